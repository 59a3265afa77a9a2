package theory

import (
	"sync"

	"github.com/RyanBlaney/sonido-teoria/algorithms/chord"
	"github.com/RyanBlaney/sonido-teoria/algorithms/genre"
	"github.com/RyanBlaney/sonido-teoria/algorithms/harmony"
	"github.com/RyanBlaney/sonido-teoria/algorithms/key"
	"github.com/RyanBlaney/sonido-teoria/algorithms/scale"
)

var defaultEngine = sync.OnceValue(func() *Engine {
	e, err := New(nil)
	if err != nil {
		panic(err)
	}
	return e
})

// Default returns the shared engine behind the package-level functions
func Default() *Engine {
	return defaultEngine()
}

func Identify(notes []string) (*chord.Identification, error) {
	return Default().Identify(notes)
}

func DetectKey(progression []string) (*key.Result, error) {
	return Default().DetectKey(progression)
}

func AnalyzeProgression(progression []string) (*ProgressionAnalysis, error) {
	return Default().AnalyzeProgression(progression)
}

func DetectGenre(progression []string) ([]genre.Detection, error) {
	return Default().DetectGenre(progression)
}

func FindPatterns(progression []string) ([]harmony.PatternMatch, error) {
	return Default().FindPatterns(progression)
}

func GetScale(root, scaleType string) (*scale.Info, error) {
	return Default().GetScale(root, scaleType)
}
