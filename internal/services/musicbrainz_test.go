package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/muse/internal/models"
	"github.com/desertthunder/muse/internal/shared"
)

const (
	artistSearchXML = `<?xml version="1.0" encoding="UTF-8"?>
<metadata xmlns="http://musicbrainz.org/ns/mmd-2.0#">
  <artist-list count="1" offset="0">
    <artist id="A1" type="Person"><name>Johann Sebastian Bach</name><sort-name>Bach, Johann Sebastian</sort-name></artist>
  </artist-list>
</metadata>`

	emptyArtistXML = `<?xml version="1.0" encoding="UTF-8"?>
<metadata xmlns="http://musicbrainz.org/ns/mmd-2.0#"><artist-list count="0" offset="0"/></metadata>`

	workBrowseXML = `<?xml version="1.0" encoding="UTF-8"?>
<metadata xmlns="http://musicbrainz.org/ns/mmd-2.0#">
  <work-list count="3">
    <work id="W1"><title>Air</title></work>
    <work id="W2"><title>Gavotte</title></work>
    <work id="W3"></work>
  </work-list>
</metadata>`

	workRelsXML = `<?xml version="1.0" encoding="UTF-8"?>
<metadata xmlns="http://musicbrainz.org/ns/mmd-2.0#">
  <work id="W2">
    <title>Gavotte</title>
    <relation-list target-type="artist">
      <relation type="composer" type-id="x"><target>A1</target>
        <artist id="A1"><name>Johann Sebastian Bach</name><sort-name>Bach, Johann Sebastian</sort-name></artist>
      </relation>
      <relation><target>A2</target><artist id="A2"></artist></relation>
    </relation-list>
  </work>
</metadata>`

	workNoRelsXML = `<?xml version="1.0" encoding="UTF-8"?>
<metadata xmlns="http://musicbrainz.org/ns/mmd-2.0#"><work id="W1"><title>Air</title></work></metadata>`

	recordingXML = `<?xml version="1.0" encoding="UTF-8"?>
<metadata xmlns="http://musicbrainz.org/ns/mmd-2.0#">
  <recording-list count="12"><recording id="R1"><title>Gavotte</title></recording></recording-list>
</metadata>`

	emptyRecordingXML = `<?xml version="1.0" encoding="UTF-8"?>
<metadata xmlns="http://musicbrainz.org/ns/mmd-2.0#"><recording-list count="0"/></metadata>`
)

// newTestCatalog serves routes keyed by URL path from an httptest server.
func newTestCatalog(t *testing.T, routes map[string]func(w http.ResponseWriter, r *http.Request)) *MusicBrainz {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := routes[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request to %s", r.URL.String())
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h(w, r)
	}))
	t.Cleanup(server.Close)

	return NewMusicBrainz(NewAPIService(APIOpts{BaseURL: server.URL}), nil)
}

func xmlBody(body string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte(body))
	}
}

func TestMusicBrainz(t *testing.T) {
	ctx := context.Background()

	t.Run("Name", func(t *testing.T) {
		mb := NewMusicBrainz(NewAPIService(APIOpts{}), nil)
		if mb.Name() != "MusicBrainz" {
			t.Errorf("unexpected name %s", mb.Name())
		}
	})

	t.Run("SearchArtistWorks", func(t *testing.T) {
		t.Run("Returns Works In Catalog Order", func(t *testing.T) {
			mb := newTestCatalog(t, map[string]func(http.ResponseWriter, *http.Request){
				"/artist": func(w http.ResponseWriter, r *http.Request) {
					if q := r.URL.Query().Get("query"); q != `artist:"Bach"` {
						t.Errorf("unexpected query %q", q)
					}
					if l := r.URL.Query().Get("limit"); l != "1" {
						t.Errorf("expected limit 1, got %s", l)
					}
					xmlBody(artistSearchXML)(w, r)
				},
				"/work": func(w http.ResponseWriter, r *http.Request) {
					if a := r.URL.Query().Get("artist"); a != "A1" {
						t.Errorf("expected artist A1, got %s", a)
					}
					if l := r.URL.Query().Get("limit"); l != "100" {
						t.Errorf("expected limit 100, got %s", l)
					}
					xmlBody(workBrowseXML)(w, r)
				},
			})

			works, err := mb.SearchArtistWorks(ctx, "Bach")
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}

			expected := []models.CatalogWork{{Title: "Air", WorkID: "W1"}, {Title: "Gavotte", WorkID: "W2"}, {Title: "", WorkID: "W3"}}
			if len(works) != len(expected) {
				t.Fatalf("expected %d works, got %d", len(expected), len(works))
			}
			for i, w := range expected {
				if works[i] != w {
					t.Errorf("work %d: expected %+v, got %+v", i, w, works[i])
				}
			}
		})

		t.Run("No Matching Artist", func(t *testing.T) {
			mb := newTestCatalog(t, map[string]func(http.ResponseWriter, *http.Request){
				"/artist": xmlBody(emptyArtistXML),
			})

			works, err := mb.SearchArtistWorks(ctx, "Nobody")
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if works == nil || len(works) != 0 {
				t.Errorf("expected empty non-nil list, got %v", works)
			}
		})

		t.Run("Blank Name Skips Request", func(t *testing.T) {
			mb := newTestCatalog(t, nil)

			works, err := mb.SearchArtistWorks(ctx, "   ")
			if err != nil || len(works) != 0 {
				t.Errorf("expected empty result, got %v, %v", works, err)
			}
		})

		t.Run("Upstream Failure", func(t *testing.T) {
			mb := newTestCatalog(t, map[string]func(http.ResponseWriter, *http.Request){
				"/artist": func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) },
			})

			_, err := mb.SearchArtistWorks(ctx, "Bach")
			if !errors.Is(err, shared.ErrCatalogRequest) {
				t.Errorf("expected ErrCatalogRequest, got %v", err)
			}
		})

		t.Run("Malformed XML", func(t *testing.T) {
			mb := newTestCatalog(t, map[string]func(http.ResponseWriter, *http.Request){
				"/artist": xmlBody("<metadata><artist-list>"),
			})

			if _, err := mb.SearchArtistWorks(ctx, "Bach"); !errors.Is(err, shared.ErrCatalogRequest) {
				t.Errorf("expected ErrCatalogRequest, got %v", err)
			}
		})
	})

	t.Run("WorkRelations", func(t *testing.T) {
		t.Run("Applies Defaults For Missing Fields", func(t *testing.T) {
			mb := newTestCatalog(t, map[string]func(http.ResponseWriter, *http.Request){
				"/work/W2": func(w http.ResponseWriter, r *http.Request) {
					if inc := r.URL.Query().Get("inc"); inc != "artist-rels" {
						t.Errorf("expected inc=artist-rels, got %s", inc)
					}
					xmlBody(workRelsXML)(w, r)
				},
			})

			info, err := mb.WorkRelations(ctx, "W2")
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if info.Failed() {
				t.Errorf("unexpected error record %q", info.Error)
			}

			expected := []models.CatalogRelation{
				{RelationType: "composer", Name: "Johann Sebastian Bach", SortName: "Bach, Johann Sebastian"},
				{RelationType: models.UnknownRelType, Name: models.NoName, SortName: models.NoSortName},
			}
			if len(info.Relations) != len(expected) {
				t.Fatalf("expected %d relations, got %d", len(expected), len(info.Relations))
			}
			for i, rel := range expected {
				if info.Relations[i] != rel {
					t.Errorf("relation %d: expected %+v, got %+v", i, rel, info.Relations[i])
				}
			}
		})

		t.Run("Work Without Relations", func(t *testing.T) {
			mb := newTestCatalog(t, map[string]func(http.ResponseWriter, *http.Request){
				"/work/W1": xmlBody(workNoRelsXML),
			})

			info, err := mb.WorkRelations(ctx, "W1")
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if info.Relations == nil || len(info.Relations) != 0 || info.Failed() {
				t.Errorf("expected empty relations, got %+v", info)
			}
		})

		t.Run("Non Success Status Yields Error Record", func(t *testing.T) {
			mb := newTestCatalog(t, map[string]func(http.ResponseWriter, *http.Request){
				"/work/W9": func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) },
			})

			info, err := mb.WorkRelations(ctx, "W9")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !info.Failed() || !strings.Contains(info.Error, "404") {
				t.Errorf("expected error record mentioning 404, got %q", info.Error)
			}
			if len(info.Relations) != 0 {
				t.Errorf("expected no relations, got %d", len(info.Relations))
			}
		})
	})

	t.Run("FirstRecordingID", func(t *testing.T) {
		t.Run("Found", func(t *testing.T) {
			mb := newTestCatalog(t, map[string]func(http.ResponseWriter, *http.Request){
				"/recording": func(w http.ResponseWriter, r *http.Request) {
					if r.URL.Query().Get("work") != "W2" || r.URL.Query().Get("limit") != "1" {
						t.Errorf("unexpected query %s", r.URL.RawQuery)
					}
					xmlBody(recordingXML)(w, r)
				},
			})

			id, err := mb.FirstRecordingID(ctx, "W2")
			if err != nil || id != "R1" {
				t.Errorf("expected R1, got %q (%v)", id, err)
			}
		})

		t.Run("Absent", func(t *testing.T) {
			mb := newTestCatalog(t, map[string]func(http.ResponseWriter, *http.Request){
				"/recording": xmlBody(emptyRecordingXML),
			})

			id, err := mb.FirstRecordingID(ctx, "W1")
			if err != nil || id != "" {
				t.Errorf("expected empty id, got %q (%v)", id, err)
			}
		})
	})
}

func TestLuceneQuote(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Bach", `"Bach"`},
		{`Guns "N" Roses`, `"Guns \"N\" Roses"`},
		{`AC\DC`, `"AC\\DC"`},
	}
	for _, tt := range tests {
		if got := luceneQuote(tt.in); got != tt.want {
			t.Errorf("luceneQuote(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
