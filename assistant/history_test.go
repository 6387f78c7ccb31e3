package assistant

import (
	"reflect"
	"testing"
)

func TestCleanHistoryAlternatesRoles(t *testing.T) {
	turns := []Turn{
		{Role: "user", Content: "hi"},
		{Role: "model", Content: "hello"},
		{Role: "model", Content: "duplicate"},
		{Role: "user", Content: "how are you"},
	}
	got := CleanHistory(turns, "new question")
	want := []Turn{
		{Role: "user", Content: "hi"},
		{Role: "model", Content: "hello"},
		{Role: "user", Content: "how are you"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("cleaned = %+v, want %+v", got, want)
	}
}

func TestCleanHistoryTrimsLeadingModelTurn(t *testing.T) {
	turns := []Turn{
		{Role: "model", Content: "orphan"},
		{Role: "user", Content: "hi"},
	}
	got := CleanHistory(turns, "next")
	if got[0].Role != "user" || got[0].Content != "hi" {
		t.Fatalf("first turn = %+v", got[0])
	}
}

func TestCleanHistoryDropsUnknownRoles(t *testing.T) {
	turns := []Turn{
		{Role: "system", Content: "x"},
		{Role: "user", Content: "a"},
		{Role: "model", Content: "b"},
	}
	got := CleanHistory(turns, "c")
	want := []Turn{
		{Role: "user", Content: "a"},
		{Role: "model", Content: "b"},
		{Role: "user", Content: "c"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("cleaned = %+v", got)
	}
}

func TestCleanHistoryEmptyFallsBackToUserTurn(t *testing.T) {
	got := CleanHistory([]Turn{{Role: "model", Content: "only"}}, "question")
	want := []Turn{{Role: "user", Content: "question"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("cleaned = %+v, want single user turn", got)
	}
}

func TestIsIdentityQuestion(t *testing.T) {
	yes := []string{
		"Who are you?",
		"what can you do",
		"hey, ARE you a bot?",
	}
	for _, s := range yes {
		if !IsIdentityQuestion(s) {
			t.Errorf("%q not detected as identity question", s)
		}
	}
	if IsIdentityQuestion("tell me about anger") {
		t.Error("false positive identity detection")
	}
}
