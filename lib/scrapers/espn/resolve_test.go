package espn

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nathanmaher41/UFCWebScraper/lib/htmlutil"
	"github.com/stretchr/testify/require"
)

func TestResolveRecord(t *testing.T) {
	doc, err := htmlutil.Parse([]byte(bioPage))
	require.NoError(t, err)

	got := Resolve(doc, KindRecord)
	want := []Candidate{
		{Value: "28-1-0", Confidence: 0.95, Snippet: "W-L-D 28-1-0"},
		{Value: "28-1-0", Confidence: 0.7, Snippet: "W-L-D 28-1-0"},
		{Value: "28-1-0", Confidence: 0.5, Snippet: "Jon Jones (28-1-0) Bio | ESPN"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("record candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveHeightWeight(t *testing.T) {
	doc, err := htmlutil.Parse([]byte(bioPage))
	require.NoError(t, err)

	got := Resolve(doc, KindHeightWeight)
	want := []Candidate{
		{Value: `6' 4", 248 lbs`, Confidence: 0.95, Snippet: `HT/WT 6' 4", 248 lbs`},
		{Value: `6' 4", 248 lbs`, Confidence: 0.6, Snippet: `HT/WT 6' 4", 248 lbs`},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("height-weight candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveHeight(t *testing.T) {
	doc, err := htmlutil.Parse([]byte(bioPage))
	require.NoError(t, err)

	got := Resolve(doc, KindHeight)
	want := []Candidate{
		{Value: `6' 4"`, Confidence: 0.9, Snippet: `HT/WT 6' 4", 248 lbs`},
		{Value: `6' 4"`, Confidence: 0.6, Snippet: `HT/WT 6' 4", 248 lbs`},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("height candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveWeight(t *testing.T) {
	doc, err := htmlutil.Parse([]byte(bioPage))
	require.NoError(t, err)

	got := Resolve(doc, KindWeight)
	want := []Candidate{
		{Value: "248 lbs", Confidence: 0.9, Snippet: `HT/WT 6' 4", 248 lbs`},
		{Value: "248 lbs", Confidence: 0.6, Snippet: `HT/WT 6' 4", 248 lbs`},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("weight candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveReach(t *testing.T) {
	doc, err := htmlutil.Parse([]byte(bioPage))
	require.NoError(t, err)

	// the reach pattern also hits the inches inside HT/WT, at low
	// confidence; ranking keeps the labeled value on top
	got := Resolve(doc, KindReach)
	want := []Candidate{
		{Value: "84.5", Confidence: 0.95, Snippet: `Reach 84.5"`},
		{Value: `4"`, Confidence: 0.5, Snippet: `HT/WT 6' 4", 248 lbs`},
		{Value: `84.5"`, Confidence: 0.5, Snippet: `Reach 84.5"`},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("reach candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveBirthdate(t *testing.T) {
	doc, err := htmlutil.Parse([]byte(bioPage))
	require.NoError(t, err)

	got := Resolve(doc, KindBirthdate)
	want := []Candidate{
		{Value: "7/19/1987", Confidence: 0.95, Snippet: "Birthdate 7/19/1987 (39)"},
		{Value: "7/19/1987", Confidence: 0.6, Snippet: "Birthdate 7/19/1987 (39)"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("birthdate candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveWeightClassAndCountry(t *testing.T) {
	doc, err := htmlutil.Parse([]byte(bioPage))
	require.NoError(t, err)

	gotClass := Resolve(doc, KindWeightClass)
	require.Len(t, gotClass, 1)
	require.Equal(t, Candidate{Value: "Heavyweight", Confidence: 0.95, Snippet: "WT Class Heavyweight"}, gotClass[0])

	gotCountry := Resolve(doc, KindCountry)
	require.Len(t, gotCountry, 1)
	require.Equal(t, "United States", gotCountry[0].Value)
}

func TestResolveNothingToFind(t *testing.T) {
	doc, err := htmlutil.Parse([]byte(`<html><body><p>nothing here</p></body></html>`))
	require.NoError(t, err)

	for _, kind := range Kinds {
		got := Resolve(doc, kind)
		if got == nil {
			t.Fatalf("Resolve(%s) returned nil, want empty slice", kind)
		}
		if len(got) != 0 {
			t.Fatalf("Resolve(%s) = %v, want no candidates", kind, got)
		}
	}
}
