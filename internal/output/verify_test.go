package output

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pkg.jsn.cam/talentfixtures/pkg/fixture"
)

func TestVerifyValid(t *testing.T) {
	for _, name := range fixture.List() {
		t.Run(name, func(t *testing.T) {
			g, err := fixture.Get(name, fixture.DefaultVocabulary())
			if err != nil {
				t.Fatal(err)
			}
			g.Init(fixture.NewRand(13))

			path := filepath.Join(t.TempDir(), name+".json")
			if _, err := WriteFile(context.Background(), path, g, 120, Options{}); err != nil {
				t.Fatal(err)
			}

			rep, err := Verify(path, g, 120)
			if err != nil {
				t.Fatalf("Verify failed: %v", err)
			}
			if rep.Err != nil || rep.Violations != 0 {
				t.Errorf("valid fixture reported %d violations: %v", rep.Violations, rep.Err)
			}
		})
	}
}

func TestVerifyCountMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "args.json")
	if _, err := WriteFile(context.Background(), path, talentGen(1), 10, Options{}); err != nil {
		t.Fatal(err)
	}

	rep, err := Verify(path, talentGen(1), 11)
	if err != nil {
		t.Fatal(err)
	}
	if !errors.Is(rep.Err, fixture.ErrCountMismatch) {
		t.Errorf("Err = %v, want ErrCountMismatch", rep.Err)
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "args.json")
	if _, err := WriteFile(context.Background(), path, talentGen(1), 10, Options{}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	tampered := strings.Replace(string(data), `"talent0003"`, `"talent0004"`, 1)
	if err := os.WriteFile(path, []byte(tampered), 0644); err != nil {
		t.Fatal(err)
	}

	rep, err := Verify(path, talentGen(1), 10)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Violations != 1 {
		t.Errorf("Violations = %d, want 1 (%v)", rep.Violations, rep.Err)
	}
	var ce *fixture.CheckError
	if !errors.As(rep.Err, &ce) || ce.Index != 3 || ce.Field != "id" {
		t.Errorf("unexpected violation: %v", rep.Err)
	}
}

func TestVerifyNotArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "args.json")
	if err := os.WriteFile(path, []byte(`{"talent": 1}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Verify(path, talentGen(1), 0); !errors.Is(err, fixture.ErrNotArray) {
		t.Errorf("error = %v, want ErrNotArray", err)
	}
}
