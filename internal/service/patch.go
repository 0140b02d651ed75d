package service

import (
	"strings"

	"basegraph.app/cms/common"
	"basegraph.app/cms/internal/model"
)

func set[V any](p model.Patch, field string, v *V) {
	if v != nil {
		p[field] = *v
	}
}

// setNullable treats an empty string as a request to clear the field.
func setNullable(p model.Patch, field string, v *string) {
	if v == nil {
		return
	}
	if *v == "" {
		p[field] = nil
		return
	}
	p[field] = *v
}

func emptyToNil(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return v
}

// resolveSlug normalizes an explicit slug, or derives one from source.
func resolveSlug(explicit, source string) (string, error) {
	if explicit != "" {
		slug, err := common.Slugify(explicit, "")
		if err != nil {
			return "", invalidField("slug", "must contain letters or digits")
		}
		return slug, nil
	}
	slug, err := common.Slugify(source, "")
	if err != nil {
		return "", invalidField("slug", "cannot be derived; provide one")
	}
	return slug, nil
}

// normalizeTags trims, lowercases and de-duplicates, keeping first occurrences.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// normalizeList trims entries and drops empty ones.
func normalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
