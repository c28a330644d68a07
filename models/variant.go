package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownVariant marks a variant tag no alias resolves.
var ErrUnknownVariant = errors.New("unknown submission variant")

// Variant identifies one of the submission kinds. The review and stream
// endpoints historically accepted several spellings for the same kind; every
// alias collapses to one canonical Variant at the boundary.
type Variant string

const (
	VariantInternship      Variant = "internship"
	VariantPlacement       Variant = "placement"
	VariantSkill           Variant = "skill"
	VariantCurricular      Variant = "curricular"
	VariantExtracurricular Variant = "extracurricular"
	VariantAcademic        Variant = "academic"
)

var variantAliases = map[string]Variant{
	"internship":          VariantInternship,
	"internships":         VariantInternship,
	"intern":              VariantInternship,
	"placement":           VariantPlacement,
	"placements":          VariantPlacement,
	"skill":               VariantSkill,
	"skills":              VariantSkill,
	"curricular":          VariantCurricular,
	"curriculam":          VariantCurricular,
	"curriculum":          VariantCurricular,
	"curricular_activity": VariantCurricular,
	"extracurricular":     VariantExtracurricular,
	"extracurriculam":     VariantExtracurricular,
	"extracurriculum":     VariantExtracurricular,
	"extra_curricular":    VariantExtracurricular,
	"academic":            VariantAcademic,
	"academics":           VariantAcademic,
	"academic_record":     VariantAcademic,
	"academic_records":    VariantAcademic,
}

// ParseVariant resolves a variant tag, case-insensitively, across its
// historical aliases. Unknown tags are a caller error.
func ParseVariant(tag string) (Variant, error) {
	v, ok := variantAliases[strings.ToLower(strings.TrimSpace(tag))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownVariant, tag)
	}
	return v, nil
}

// Table returns the table holding this variant's rows.
func (v Variant) Table() string {
	switch v {
	case VariantInternship:
		return "internships"
	case VariantPlacement:
		return "placements"
	case VariantSkill:
		return "skills"
	case VariantCurricular:
		return "curricular_activities"
	case VariantExtracurricular:
		return "extracurricular_activities"
	case VariantAcademic:
		return "academic_records"
	}
	return ""
}

// Title is the human-readable heading attached to admin-queue documents.
func (v Variant) Title() string {
	switch v {
	case VariantInternship:
		return "Internship"
	case VariantPlacement:
		return "Placement"
	case VariantSkill:
		return "Skill"
	case VariantCurricular:
		return "Curricular Activity"
	case VariantExtracurricular:
		return "Extracurricular Activity"
	case VariantAcademic:
		return "Academic Record"
	}
	return ""
}

// BreakdownKey is the wire key used in the admin pending-queue breakdown.
// The misspellings are the historical payload shape and are kept on purpose.
func (v Variant) BreakdownKey() string {
	switch v {
	case VariantInternship:
		return "internships"
	case VariantPlacement:
		return "placements"
	case VariantSkill:
		return "skills"
	case VariantCurricular:
		return "curriculam"
	case VariantExtracurricular:
		return "extracurriculam"
	}
	return ""
}

// EventName labels the SSE data events pushed on this variant's streams.
func (v Variant) EventName() string {
	return string(v) + "-records"
}

// ReviewableVariants are the achievement kinds that pass through the admin
// pending queue. Academic records are uploaded, never reviewed.
func ReviewableVariants() []Variant {
	return []Variant{
		VariantInternship,
		VariantPlacement,
		VariantSkill,
		VariantCurricular,
		VariantExtracurricular,
	}
}

// AllVariants lists every variant that has a student stream.
func AllVariants() []Variant {
	return append(ReviewableVariants(), VariantAcademic)
}
