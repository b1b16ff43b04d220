package domain

// Decision thresholds. Placeholders until a trained model replaces the tree.
const (
	energeticTimbral = 100.0
	energeticZCR     = 0.05
	popTimbral       = 50.0
	sadTimbral       = -50.0
	rockContrast     = 30.0
	edmPitchClass    = 0.5
)

// DefaultLabel is returned when no branch of the decision tree matches.
const DefaultLabel = LabelSoulfulBallads

// Classification is the label picked for an upload and its example songs.
type Classification struct {
	Label GenreLabel `json:"song_type"`
	Songs []string   `json:"recommended_songs"`
}

// Classify walks the decision tree in order. The first matching branch wins.
func Classify(f FeatureSummary) Classification {
	label := pickLabel(f)
	songs, _ := Songs(label)
	return Classification{Label: label, Songs: songs}
}

func pickLabel(f FeatureSummary) GenreLabel {
	timbral := f.TimbralEnergy()

	switch {
	case timbral > energeticTimbral && f.ZeroCrossingMean > energeticZCR:
		return LabelEnergeticHipHop
	case timbral > popTimbral:
		return LabelPopSmooth
	case timbral < sadTimbral:
		return LabelSadMelancholic
	case f.ContrastLevel() > rockContrast:
		return LabelRockRaspy
	case f.PitchClassEnergy() > edmPitchClass:
		return LabelDanceEDM
	default:
		return DefaultLabel
	}
}
