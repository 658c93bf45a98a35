package labparser

import (
	"strings"

	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/domain"
)

// ComputeFlag derives the abnormality flag for a value. A value exactly on a
// bound is within range. It returns "" when there is no basis for a flag.
func ComputeFlag(v domain.Value, r Range) domain.Flag {
	if text, ok := v.Text(); ok {
		switch strings.ToLower(text) {
		case "positive", "reactive":
			return domain.FlagAbnormal
		case "negative", "non-reactive", "non reactive":
			return domain.FlagNormal
		}
		return ""
	}

	f, ok := v.Float()
	if !ok {
		return ""
	}
	switch r.Kind {
	case BoundInterval:
		if f < r.Low {
			return domain.FlagLow
		}
		if f > r.High {
			return domain.FlagHigh
		}
		return domain.FlagNormal
	case BoundUpper:
		if f <= r.High {
			return domain.FlagNormal
		}
		return domain.FlagHigh
	case BoundLower:
		if f >= r.Low {
			return domain.FlagNormal
		}
		return domain.FlagLow
	}
	return ""
}
