package telemetry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"keema/internal/models"
)

const maxWrapperDepth = 4

// ParsedMatch is the match-level view of one parser output document.
type ParsedMatch struct {
	GameID          string
	DurationSeconds float64
	Participants    []map[string]any
}

// Extract decodes a parser output document and locates its game identifier,
// duration and participant list. fallbackID is used when the document carries
// no identifier of its own.
func Extract(doc []byte, fallbackID string) (*ParsedMatch, error) {
	root, err := decode(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode output: %v", models.ErrParserFailure, err)
	}

	participants := locateParticipants(root, 0)
	if len(participants) == 0 {
		return nil, models.ErrMissingParticipants
	}

	match := &ParsedMatch{Participants: participants}

	for _, obj := range headerObjects(root) {
		if match.GameID == "" {
			match.GameID = lookupString(obj, gameIDFields)
		}
		if match.DurationSeconds == 0 {
			if secs := lookupNumber(obj, durationFields); secs != nil && *secs > 0 {
				match.DurationSeconds = *secs
			} else if ms := lookupNumber(obj, lengthMSFields); ms != nil && *ms > 0 {
				match.DurationSeconds = *ms / 1000
			}
		}
	}

	if match.GameID == "" {
		match.GameID = strings.TrimSpace(fallbackID)
	}
	if match.GameID == "" {
		return nil, fmt.Errorf("%w: no game identifier", models.ErrParserFailure)
	}
	return match, nil
}

func decode(doc []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// headerObjects returns the objects that may carry match-level fields: the
// root itself and its metadata/info wrappers when present.
func headerObjects(root any) []map[string]any {
	obj, ok := root.(map[string]any)
	if !ok {
		return nil
	}
	res := []map[string]any{obj}
	for _, key := range headerWrappers {
		if inner, ok := obj[key].(map[string]any); ok {
			res = append(res, inner)
		}
	}
	return res
}

func locateParticipants(v any, depth int) []map[string]any {
	if depth > maxWrapperDepth {
		return nil
	}

	switch t := v.(type) {
	case []any:
		if len(t) > 0 {
			if first, ok := t[0].(map[string]any); ok {
				if inner, ok := first["participants"]; ok {
					return locateParticipants(inner, depth+1)
				}
			}
		}
		return objects(t)

	case string:
		// the ROFL metadata block stores its stats as an encoded JSON string
		inner, err := decode([]byte(t))
		if err != nil {
			return nil
		}
		return locateParticipants(inner, depth+1)

	case map[string]any:
		for _, key := range statsWrappers {
			if inner, ok := t[key]; ok && inner != nil {
				if found := locateParticipants(inner, depth+1); len(found) > 0 {
					return found
				}
			}
		}
		for _, key := range participantsLists {
			if list, ok := t[key].([]any); ok {
				if found := objects(list); len(found) > 0 {
					return found
				}
			}
		}
	}
	return nil
}

func objects(list []any) []map[string]any {
	res := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if obj, ok := item.(map[string]any); ok {
			res = append(res, obj)
		}
	}
	return res
}
