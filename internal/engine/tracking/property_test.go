package tracking

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/dshills/revpoint/internal/engine/buffer"
)

const alphabet = "abcdefgh  \n"

func randomString(r *rand.Rand, maxLen int) string {
	n := r.Intn(maxLen + 1)
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteByte(alphabet[r.Intn(len(alphabet))])
	}
	return sb.String()
}

func randomPosition(r *rand.Rand, text *buffer.Text) buffer.Position {
	line := r.Intn(text.LineCount())
	return buffer.Pos(line, r.Intn(text.LineLength(line)+1))
}

func randomRange(r *rand.Rand, text *buffer.Text) buffer.Range {
	a, b := randomPosition(r, text), randomPosition(r, text)
	if a.After(b) {
		a, b = b, a
	}
	return buffer.Range{Start: a, End: b}
}

// TestRandomEditsKeepRangesAnchored replays random edit sequences against a
// real document and checks that tracked ranges stay valid and that text
// untouched by an edit is still exactly what the range covers.
func TestRandomEditsKeepRangesAnchored(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for round := 0; round < 200; round++ {
		text := buffer.NewText(randomString(r, 200))
		tracked := randomRange(r, text)

		for step := 0; step < 30; step++ {
			before, err := text.Slice(tracked)
			if err != nil {
				t.Fatalf("round %d step %d: tracked range %s invalid before edit: %v", round, step, tracked, err)
			}

			e := buffer.Edit{Deleted: randomRange(r, text), Inserted: randomString(r, 12)}
			if err := text.Apply(e); err != nil {
				t.Fatalf("round %d step %d: apply %s: %v", round, step, e, err)
			}

			next, changed := UpdateRange(tracked, e)
			if !next.IsValid() {
				t.Fatalf("round %d step %d: %s on %s produced invalid range %s", round, step, e, tracked, next)
			}
			if !text.ValidRange(next) {
				t.Fatalf("round %d step %d: %s on %s produced %s outside document", round, step, e, tracked, next)
			}
			if changed == (next == tracked) {
				t.Fatalf("round %d step %d: changed=%v inconsistent with %s -> %s", round, step, changed, tracked, next)
			}

			disjoint := e.Deleted.End.Compare(tracked.Start) <= 0 || e.Deleted.Start.Compare(tracked.End) >= 0
			if disjoint {
				after, err := text.Slice(next)
				if err != nil {
					t.Fatalf("round %d step %d: slice %s: %v", round, step, next, err)
				}
				if after != before {
					t.Fatalf("round %d step %d: %s on %s: content %q became %q", round, step, e, tracked, before, after)
				}
			}

			tracked = next
		}
	}
}

func TestRandomEditsAfterEndAreNoOps(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	for i := 0; i < 1000; i++ {
		text := buffer.NewText(randomString(r, 120))
		tracked := randomRange(r, text)

		e := buffer.Edit{Deleted: randomRange(r, text), Inserted: randomString(r, 8)}
		if e.Deleted.Start.Before(tracked.End) {
			continue
		}
		if got, changed := UpdateRange(tracked, e); changed || got != tracked {
			t.Fatalf("%s after %s moved it to %s", e, tracked, got)
		}
	}
}
