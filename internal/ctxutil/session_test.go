package ctxutil

import (
	"context"
	"testing"
)

func TestInSession(t *testing.T) {
	if InSession(context.Background()) {
		t.Error("background context should not be a session")
	}
	if !InSession(WithSession(context.Background())) {
		t.Error("WithSession context should be a session")
	}
}
