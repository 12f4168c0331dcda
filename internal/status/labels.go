package status

// The two metrics share one threshold table so a score always lands in the
// same band for its label and its color.
var bandUpper = [4]float64{20, 40, 60, 80}

// ramp runs from healthy green to needs-attention red.
var ramp = [5]string{"#35a173", "#59c48c", "#80d6aa", "#f59e0b", "#e9493e"}

var cleanlinessLabels = [5]string{
	"Recently cleaned",
	"Clean",
	"May need cleaning soon",
	"Due for cleaning",
	"Needs cleaning",
}

func band(score float64) int {
	for i, upper := range bandUpper {
		if score < upper {
			return i
		}
	}
	return 4
}

// CleanlinessColor maps a cleanliness score to its hex color. Low scores are
// clean, so the ramp runs green to red with the score.
func CleanlinessColor(score float64) string {
	return ramp[band(score)]
}

// CleanlinessLabel maps a cleanliness score to its display text.
func CleanlinessLabel(score float64) string {
	return cleanlinessLabels[band(score)]
}

// RecencyColor maps a recency score to its hex color. High scores mean
// recently played, so the ramp is inverted relative to cleanliness.
func RecencyColor(score float64) string {
	return ramp[4-band(score)]
}

// RecencyLabel maps a recency score to its display text. Callers that know a
// release was never played should use "Never played" instead.
func RecencyLabel(score float64) string {
	switch {
	case score >= 100:
		return "Played this week"
	case score >= 80:
		return "Played this month"
	case score >= 60:
		return "Played in the last 3 months"
	case score >= 40:
		return "Played in the last 6 months"
	case score >= 20:
		return "Played this year"
	default:
		return "Not played recently"
	}
}
