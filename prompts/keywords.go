package prompts

import (
	"strings"

	"github.com/Nydauron/cyclingportal/portal"
)

var stageTypeKeywords = map[string]portal.StageType{
	"FLAT":            portal.Flat,
	"F":               portal.Flat,
	"MEDIUM MOUNTAIN": portal.MediumMountain,
	"MEDIUM_MOUNTAIN": portal.MediumMountain,
	"MM":              portal.MediumMountain,
	"HIGH MOUNTAIN":   portal.HighMountain,
	"HIGH_MOUNTAIN":   portal.HighMountain,
	"HM":              portal.HighMountain,
	"TIME TRIAL":      portal.TimeTrial,
	"TIME_TRIAL":      portal.TimeTrial,
	"TT":              portal.TimeTrial,
	"ITT":             portal.TimeTrial,
}

var segmentCategoryKeywords = map[string]portal.SegmentCategory{
	"SPRINT":              portal.Sprint,
	"S":                   portal.Sprint,
	"INTERMEDIATE SPRINT": portal.Sprint,
	"C4":                  portal.C4,
	"4":                   portal.C4,
	"C3":                  portal.C3,
	"3":                   portal.C3,
	"C2":                  portal.C2,
	"2":                   portal.C2,
	"C1":                  portal.C1,
	"1":                   portal.C1,
	"HC":                  portal.HC,
	"HORS CATEGORIE":      portal.HC,
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToUpper(s)), " ")
}

// TranslateStageType accepts the canonical names as well as common abbreviations.
func TranslateStageType(s string) (portal.StageType, bool) {
	t, ok := stageTypeKeywords[normalize(s)]
	return t, ok
}

func TranslateSegmentCategory(s string) (portal.SegmentCategory, bool) {
	c, ok := segmentCategoryKeywords[normalize(s)]
	return c, ok
}
