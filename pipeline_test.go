package pathkit

import (
	"testing"
)

func TestPipeline(t *testing.T) {
	var calls []string
	tag := func(name string) Transformer {
		return TransformerFunc(func(p Path) Path {
			calls = append(calls, name)
			return p
		})
	}
	pl := Pipeline{tag("a"), tag("b"), tag("c")}
	pl.TransformPath(NewPath())
	diff(t, []string{"a", "b", "c"}, calls)

	p := NewPath(collinearLines(5)...)
	diff(t, p, Pipeline(nil).TransformPath(p))
}

func TestPipelineStages(t *testing.T) {
	p := NewPath(collinearLines(20)...)
	p.ID = "line"
	doc := Document{Width: "10", Paths: []Path{p, NewPath(hexagon(Pt(0, 0), 10)...)}}
	orig := doc.Clone()

	pl := Pipeline{
		HealStage{Count: 1},
		SimplifyStage{TolerancePercent: 0.5, Options: DefaultSimplifyOptions},
	}
	out := pl.TransformDocument(doc)
	diff(t, orig, doc)
	diff(t, "10", out.Width)
	diff(t, 2, len(out.Paths))
	diff(t, "line", out.Paths[0].ID)
	diff(t, []Segment{MoveTo(Pt(0, 0)), LineTo(Pt(20, 0))}, out.Paths[0].Segments)
}

func TestHealStage(t *testing.T) {
	p := NewPath(collinearLines(20)...)
	diff(t, HealMultiple(p, 3), HealStage{Count: 3}.TransformPath(p))
	diff(t, HealMultiple(p, OptimalHealCount(p)), HealStage{Count: -1}.TransformPath(p))
	diff(t, p, HealStage{}.TransformPath(p))
}
