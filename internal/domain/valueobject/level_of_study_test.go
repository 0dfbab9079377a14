package valueobject

import "testing"

func TestNewLevelOfStudy_KnownValues_Succeed(t *testing.T) {
	for _, want := range LevelsOfStudy() {
		got, err := NewLevelOfStudy(string(want))
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", want, err)
		}
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}

func TestNewLevelOfStudy_TrimsWhitespace(t *testing.T) {
	got, err := NewLevelOfStudy("  Graduate ")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != LevelGraduate {
		t.Errorf("got %q, want %q", got, LevelGraduate)
	}
}

func TestNewLevelOfStudy_UnknownValue_ReturnsErrInvalidLevelOfStudy(t *testing.T) {
	for _, in := range []string{"", "undergraduate", "PhD", "High School"} {
		if _, err := NewLevelOfStudy(in); err != ErrInvalidLevelOfStudy {
			t.Errorf("input %q: expected ErrInvalidLevelOfStudy, got: %v", in, err)
		}
	}
}
