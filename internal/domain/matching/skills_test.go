package matching

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestNormalizeSkills_CommaString(t *testing.T) {
	set, err := NormalizeSkills(" Python, react ,SQL,, python ,")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got := set.Names()
	want := []string{"Python", "react", "SQL"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNormalizeSkills_List(t *testing.T) {
	set, err := NormalizeSkills([]string{"Go", "PostgreSQL", "GO", "  "})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(set) != 2 {
		t.Fatalf("expected 2 skills, got %d", len(set))
	}
	if set[0].Display != "Go" || set[0].Folded != "go" {
		t.Fatalf("unexpected first skill: %+v", set[0])
	}
}

func TestNormalizeSkills_DecodedJSONArray(t *testing.T) {
	var body struct {
		Skills any `json:"skills"`
	}
	if err := json.Unmarshal([]byte(`{"skills":["Python","React","SQL","python"]}`), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	set, err := NormalizeSkills(body.Skills)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got := set.Names()
	want := []string{"Python", "React", "SQL"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNormalizeSkills_RejectsMixedList(t *testing.T) {
	_, err := NormalizeSkills([]any{"Python", 7})
	if !errors.Is(err, ErrInvalidSkillsInput) {
		t.Fatalf("expected ErrInvalidSkillsInput, got %v", err)
	}
}

func TestNormalizeSkills_KeepsFirstCasing(t *testing.T) {
	set, err := NormalizeSkills("ReAct,react,REACT")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(set) != 1 {
		t.Fatalf("expected 1 skill, got %d", len(set))
	}
	if set[0].Display != "ReAct" {
		t.Fatalf("expected first-occurrence casing, got %q", set[0].Display)
	}
}

func TestNormalizeSkills_EmptyInputs(t *testing.T) {
	for _, raw := range []any{nil, "", " , ,", []string{}, []string{" "}} {
		set, err := NormalizeSkills(raw)
		if err != nil {
			t.Fatalf("input %#v: unexpected err: %v", raw, err)
		}
		if len(set) != 0 {
			t.Fatalf("input %#v: expected empty set, got %v", raw, set.Names())
		}
	}
}

func TestNormalizeSkills_InvalidType(t *testing.T) {
	_, err := NormalizeSkills(42)
	if !errors.Is(err, ErrInvalidSkillsInput) {
		t.Fatalf("expected ErrInvalidSkillsInput, got %v", err)
	}
}

func TestBuildCorpus(t *testing.T) {
	got := BuildCorpus("Backend Developer", "We use Go and Redis.")
	want := "backend developer we use go and redis."
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestBuildCorpus_OmitsEmptyFields(t *testing.T) {
	got := BuildCorpus("Title", "", "  ", "Docker, Kubernetes")
	want := "title docker, kubernetes"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
