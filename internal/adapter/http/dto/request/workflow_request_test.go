package request

import "testing"

func TestTransitionRequest_Target(t *testing.T) {
	r := TransitionRequest{To: "  In_Progress "}
	if got := r.Target(); got != "in_progress" {
		t.Fatalf("expected in_progress, got %q", got)
	}
}
