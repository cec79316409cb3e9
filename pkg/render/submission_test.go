package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formpreview/pkg/render"
)

func TestMergeAndSortHiddenFields(t *testing.T) {
	base := map[string]string{
		" existing ": "keep",
		"":           "ignored",
	}

	merged := render.MergeHiddenFields(base,
		render.CSRFToken("_csrf", "token123"),
		render.AuthToken(" auth_token ", "abc123"),
		render.VersionField("version", 4),
		render.Hidden("  ", "skip"),
	)

	wantMerged := map[string]string{
		"existing":   "keep",
		"_csrf":      "token123",
		"auth_token": "abc123",
		"version":    "4",
	}
	if diff := cmp.Diff(wantMerged, merged); diff != "" {
		t.Fatalf("merged hidden fields mismatch (-want +got):\n%s", diff)
	}

	sorted := render.SortedHiddenFields(merged)
	wantSorted := []render.HiddenField{
		{Name: "_csrf", Value: "token123"},
		{Name: "auth_token", Value: "abc123"},
		{Name: "existing", Value: "keep"},
		{Name: "version", Value: "4"},
	}
	if diff := cmp.Diff(wantSorted, sorted); diff != "" {
		t.Fatalf("sorted hidden fields mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeSubmission(t *testing.T) {
	values := map[string]string{
		"username": "alice_01",
		"password": "s3cret pw",
		"_csrf":    "tok",
	}

	tests := []struct {
		format render.SubmissionFormat
		want   string
		ctype  string
	}{
		{render.SubmissionJSON, `{"_csrf":"tok","password":"s3cret pw","username":"alice_01"}`, "application/json"},
		{render.SubmissionForm, "_csrf=tok&password=s3cret+pw&username=alice_01", "application/x-www-form-urlencoded"},
		{render.SubmissionPretty, "_csrf: tok\npassword: s3cret pw\nusername: alice_01\n", "text/plain; charset=utf-8"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			got, err := render.EncodeSubmission(tt.format, values)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			if diff := cmp.Diff(tt.want, string(got)); diff != "" {
				t.Fatalf("payload mismatch (-want +got):\n%s", diff)
			}
			if ct := tt.format.ContentType(); ct != tt.ctype {
				t.Fatalf("content type = %q, want %q", ct, tt.ctype)
			}
		})
	}

	if _, err := render.EncodeSubmission("xml", values); err == nil {
		t.Fatalf("expected unknown format error")
	}
	if got, _ := render.EncodeSubmission(render.SubmissionJSON, nil); string(got) != "{}" {
		t.Fatalf("empty payload = %q", got)
	}
}
