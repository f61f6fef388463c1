package services

import (
	"context"
	"errors"
	"testing"

	"trip-planner-service/internal/domain"
)

func composeFixture(t *testing.T, c *Composer, pool []ScoredAttraction) *domain.Itinerary {
	t.Helper()
	it, err := c.Compose(context.Background(), ComposeRequest{
		Destination: "Beijing",
		Days:        2,
		Budget:      3000,
		Attractions: pool,
		Lodgings:    testLodgings(),
	})
	if err != nil {
		t.Fatalf("compose fixture: %v", err)
	}
	return it
}

func TestOptimizeRejectsUnknownGoal(t *testing.T) {
	o := &Optimizer{Composer: testComposer(newFakeProvider())}

	_, err := o.Optimize(context.Background(), &domain.Itinerary{}, domain.Goal("teleport"))
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("got %v, want ErrInvalidRequest", err)
	}
}

func TestOptimizeEmptyPlanPassesThrough(t *testing.T) {
	o := &Optimizer{Composer: testComposer(newFakeProvider())}

	it := &domain.Itinerary{}
	out, err := o.Optimize(context.Background(), it, domain.GoalMinimizeCost)
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}
	if out != it {
		t.Error("empty plan should come back unchanged")
	}
}

func TestOptimizeTravelTimeNeverWorse(t *testing.T) {
	c := testComposer(newFakeProvider())
	orig := composeFixture(t, c, testPool(8))

	o := &Optimizer{Composer: c}
	out, err := o.Optimize(context.Background(), orig, domain.GoalMinimizeTravelTime)
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}

	if out.TravelSeconds() > orig.TravelSeconds() {
		t.Errorf("travel time regressed: %d -> %d", orig.TravelSeconds(), out.TravelSeconds())
	}
	if out.StopCount() != orig.StopCount() {
		t.Errorf("stop count changed: %d -> %d", orig.StopCount(), out.StopCount())
	}

	// Visit times must still be well formed after any reorder.
	for _, d := range out.Schedule {
		for i := 1; i < len(d.Stops); i++ {
			if d.Stops[i].StartMinute < d.Stops[i-1].EndMinute() {
				t.Fatalf("day %d stops overlap after optimization", d.Day)
			}
		}
	}
}

func TestOptimizeMinimizeCostNeverWorse(t *testing.T) {
	c := testComposer(newFakeProvider())
	pool := testPool(8)
	// Spread costs so reselection has cheaper material to work with.
	for i := range pool {
		pool[i].Cost = float64(20 + 15*i)
	}
	orig := composeFixture(t, c, pool)

	var attractions []domain.Attraction
	for _, a := range pool {
		attractions = append(attractions, a.Attraction)
	}
	src := &stubSource{attractions: attractions, lodgings: testLodgings()}

	o := &Optimizer{Composer: c, Source: src}
	out, err := o.Optimize(context.Background(), orig, domain.GoalMinimizeCost)
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}

	if out.Costs.Total > orig.Costs.Total {
		t.Errorf("total cost regressed: %.2f -> %.2f", orig.Costs.Total, out.Costs.Total)
	}
}

func TestOptimizeReselectionWithoutSourceKeepsPlan(t *testing.T) {
	c := testComposer(newFakeProvider())
	orig := composeFixture(t, c, testPool(6))

	o := &Optimizer{Composer: c} // no candidate source
	out, err := o.Optimize(context.Background(), orig, domain.GoalMaximizeRating)
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}
	if out != orig {
		t.Error("without a source the original plan must come back")
	}
}

func TestOptimizeCancelledContext(t *testing.T) {
	c := testComposer(newFakeProvider())
	orig := composeFixture(t, c, testPool(6))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := &Optimizer{Composer: c}
	if _, err := o.Optimize(ctx, orig, domain.GoalMinimizeTravelTime); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}
