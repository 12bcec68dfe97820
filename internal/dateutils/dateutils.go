// Package dateutils provides the date parsing used by the CSV loader.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO    = "2006-01-02"
	DateLayoutGerman = "02.01.2006"
	DateLayoutUS     = "01/02/2006"
)

// CandidateLayouts is the ordered list of layouts tried during auto-detection.
// German bank exports favour DD.MM.YYYY; ISO comes first because it is
// unambiguous.
var CandidateLayouts = []string{
	DateLayoutISO,
	DateLayoutGerman,
	"02.01.06",
	"02/01/2006",
	DateLayoutUS,
	"2006/01/02",
	"02-01-2006",
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// CleanDateString trims a date string and collapses internal whitespace runs.
func CleanDateString(dateStr string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ParseDate parses a date string with an explicit Go layout.
func ParseDate(dateStr, layout string) (time.Time, error) {
	t, err := time.Parse(layout, CleanDateString(dateStr))
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date '%s' with layout '%s'", dateStr, layout)
	}
	return t, nil
}

// DetectLayout determines the one layout from CandidateLayouts that parses
// every sample. If no candidate parses all samples the input is unparseable;
// if two candidates parse all samples but disagree on any calendar date (the
// classic DD.MM vs MM.DD case) the input is ambiguous. Both conditions return
// a diagnostic error so the caller can ask for an explicit layout.
func DetectLayout(samples []string) (string, error) {
	if len(samples) == 0 {
		return "", fmt.Errorf("no date samples to detect a format from")
	}

	type candidate struct {
		layout string
		dates  []time.Time
	}
	var matching []candidate

	for _, layout := range CandidateLayouts {
		dates := make([]time.Time, 0, len(samples))
		ok := true
		for _, s := range samples {
			t, err := time.Parse(layout, CleanDateString(s))
			if err != nil {
				ok = false
				break
			}
			dates = append(dates, t)
		}
		if ok {
			matching = append(matching, candidate{layout: layout, dates: dates})
		}
	}

	switch len(matching) {
	case 0:
		return "", fmt.Errorf("unable to detect date format from sample '%s'; specify one explicitly", samples[0])
	case 1:
		return matching[0].layout, nil
	}

	// Multiple layouts fit structurally. That is only a problem when they
	// disagree about an actual calendar date.
	first := matching[0]
	for _, other := range matching[1:] {
		for i := range first.dates {
			if !first.dates[i].Equal(other.dates[i]) {
				return "", fmt.Errorf("date format is ambiguous: '%s' parses as both %s and %s; specify one explicitly",
					samples[i], first.layout, other.layout)
			}
		}
	}
	return first.layout, nil
}
