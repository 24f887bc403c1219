package store

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/talentcrew/internal/candidate"
)

// Layouts accepted for interview_time. The last one is written by older datasets.
var timeLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04", "2006-01-02 03:04 PM"}

// Encode converts a candidate into a stored record.
func Encode(c candidate.Candidate) Record {
	attrs := map[string]any{
		"name":             c.Name,
		"email":            c.Email,
		"source":           c.Source,
		"skills":           nonNil(c.Skills),
		"experience_years": c.ExperienceYears,
	}

	if c.MatchScore != nil {
		attrs["match_score"] = *c.MatchScore
		attrs["matching_skills"] = nonNil(c.MatchingSkills)
		attrs["missing_skills"] = nonNil(c.MissingSkills)
		attrs["experience_gap"] = c.ExperienceGap
	}
	if c.ExperienceMatch != nil {
		attrs["experience_match"] = *c.ExperienceMatch
	}
	if c.Engaged {
		attrs["engaged"] = true
		attrs["engagement_message"] = c.EngagementMessage
	}
	if c.IsInterested != nil {
		attrs["is_interested"] = *c.IsInterested
	}
	if c.InterviewTime != nil {
		attrs["interview_time"] = c.InterviewTime.Format(time.RFC3339)
	}

	return Record{
		ID:         c.ID,
		Stage:      c.Stage.String(),
		JobTitle:   c.JobTitle,
		Attributes: attrs,
		Body:       c.Resume,
		Version:    c.Version,
	}
}

// Decode converts a stored record back into a candidate. Loosely typed attributes written
// by older datasets are accepted: comma joined skill lists, numeric strings and
// non RFC 3339 interview times.
func Decode(r Record) (candidate.Candidate, error) {
	stage, err := candidate.ParseStage(r.Stage)
	if err != nil {
		return candidate.Candidate{}, fmt.Errorf("decode %s: %w", r.ID, err)
	}

	input := make(map[string]any, len(r.Attributes)+1)
	for k, v := range r.Attributes {
		if k == "stage" {
			continue
		}
		input[k] = v
	}
	input["job_title"] = r.JobTitle

	var c candidate.Candidate
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &c,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			commaSeparatedHook,
			stringToTimeHook,
		),
	})
	if err != nil {
		return candidate.Candidate{}, err
	}
	if err := dec.Decode(input); err != nil {
		return candidate.Candidate{}, fmt.Errorf("decode %s: %w", r.ID, err)
	}

	c.ID = r.ID
	c.Stage = stage
	c.Resume = r.Body
	c.Version = r.Version
	return c, nil
}

// DecodeAll decodes a batch, stopping at the first malformed record.
func DecodeAll(records []Record) ([]candidate.Candidate, error) {
	out := make([]candidate.Candidate, 0, len(records))
	for _, r := range records {
		c, err := Decode(r)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func commaSeparatedHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf([]string(nil)) {
		return data, nil
	}
	parts := strings.Split(data.(string), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}

func stringToTimeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(time.Time{}) {
		return data, nil
	}
	s := strings.TrimSpace(data.(string))
	var lastErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
