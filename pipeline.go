package pathkit

// Transformer transforms a path into a new one. Implementations must not
// modify their input.
//
// Further processing stages, such as organic smoothing, plug into a
// [Pipeline] by implementing Transformer.
type Transformer interface {
	TransformPath(p Path) Path
}

// TransformerFunc adapts a function to the Transformer interface.
type TransformerFunc func(Path) Path

func (fn TransformerFunc) TransformPath(p Path) Path { return fn(p) }

// Pipeline applies its stages in order.
type Pipeline []Transformer

func (pl Pipeline) TransformPath(p Path) Path {
	for _, t := range pl {
		p = t.TransformPath(p)
	}
	return p
}

// TransformDocument applies the pipeline to every path of doc.
func (pl Pipeline) TransformDocument(doc Document) Document {
	return doc.Map(pl.TransformPath)
}

// SimplifyStage is a [Transformer] running [SimplifyWith].
type SimplifyStage struct {
	TolerancePercent float64
	Options          SimplifyOptions
}

func (s SimplifyStage) TransformPath(p Path) Path {
	return SimplifyWith(p, s.TolerancePercent, s.Options)
}

// HealStage is a [Transformer] running [HealMultiple]. A negative Count heals
// by [OptimalHealCount].
type HealStage struct {
	Count int
}

func (s HealStage) TransformPath(p Path) Path {
	n := s.Count
	if n < 0 {
		n = OptimalHealCount(p)
	}
	return HealMultiple(p, n)
}

var (
	_ Transformer = Pipeline(nil)
	_ Transformer = TransformerFunc(nil)
	_ Transformer = SimplifyStage{}
	_ Transformer = HealStage{}
)
