// MusicBrainz implementation of [Catalog]
//
// Response types follow the mmd-2.0 XML schema: https://musicbrainz.org/doc/MusicBrainz_XML
package services

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/muse/internal/models"
	"github.com/desertthunder/muse/internal/shared"
)

// maxArtistWorks bounds the works browse request.
const maxArtistWorks = 100

type mbMetadata struct {
	XMLName       xml.Name         `xml:"metadata"`
	ArtistList    *mbArtistList    `xml:"artist-list"`
	WorkList      *mbWorkList      `xml:"work-list"`
	RecordingList *mbRecordingList `xml:"recording-list"`
	Work          *mbWork          `xml:"work"`
}

type mbArtistList struct {
	Count   int        `xml:"count,attr"`
	Artists []mbArtist `xml:"artist"`
}

type mbArtist struct {
	ID       string `xml:"id,attr"`
	Name     string `xml:"name"`
	SortName string `xml:"sort-name"`
}

type mbWorkList struct {
	Count int      `xml:"count,attr"`
	Works []mbWork `xml:"work"`
}

type mbWork struct {
	ID            string           `xml:"id,attr"`
	Title         string           `xml:"title"`
	RelationLists []mbRelationList `xml:"relation-list"`
}

type mbRelationList struct {
	TargetType string       `xml:"target-type,attr"`
	Relations  []mbRelation `xml:"relation"`
}

type mbRelation struct {
	Type   string    `xml:"type,attr"`
	Artist *mbArtist `xml:"artist"`
}

type mbRecordingList struct {
	Recordings []mbRecording `xml:"recording"`
}

type mbRecording struct {
	ID    string `xml:"id,attr"`
	Title string `xml:"title"`
}

// MusicBrainz implements [Catalog] against the MusicBrainz XML web service.
type MusicBrainz struct {
	api    *APIService
	logger *log.Logger
}

// NewMusicBrainz creates a MusicBrainz catalog on top of api.
func NewMusicBrainz(api *APIService, logger *log.Logger) *MusicBrainz {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &MusicBrainz{api: api, logger: shared.WithLogger(logger, "component", "catalog")}
}

// Name returns the catalog name.
func (m *MusicBrainz) Name() string {
	return "MusicBrainz"
}

// SearchArtistWorks finds the first artist matching artistName and browses up to 100 of its works.
func (m *MusicBrainz) SearchArtistWorks(ctx context.Context, artistName string) ([]models.CatalogWork, error) {
	works := []models.CatalogWork{}

	artistName = strings.TrimSpace(artistName)
	if artistName == "" {
		return works, nil
	}

	var found mbMetadata
	query := url.Values{"query": {"artist:" + luceneQuote(artistName)}, "limit": {"1"}}
	if err := m.fetch(ctx, "artist", query, &found); err != nil {
		return works, err
	}

	if found.ArtistList == nil || len(found.ArtistList.Artists) == 0 || found.ArtistList.Artists[0].ID == "" {
		m.logger.Debug("no artist matched", "artist", artistName)
		return works, nil
	}
	artistID := found.ArtistList.Artists[0].ID

	var browsed mbMetadata
	query = url.Values{"artist": {artistID}, "limit": {fmt.Sprint(maxArtistWorks)}}
	if err := m.fetch(ctx, "work", query, &browsed); err != nil {
		return works, err
	}

	if browsed.WorkList == nil {
		return works, nil
	}
	for _, w := range browsed.WorkList.Works {
		works = append(works, models.CatalogWork{Title: w.Title, WorkID: w.ID})
	}

	m.logger.Debug("artist works fetched", "artist", artistName, "artist_id", artistID, "works", len(works))
	return works, nil
}

// WorkRelations fetches the artist relations of a work.
//
// A non-success status produces an error record rather than an error, so the caller can show it.
func (m *MusicBrainz) WorkRelations(ctx context.Context, workID string) (*models.WorkInfo, error) {
	resp, err := m.api.Get(ctx, "work/"+url.PathEscape(workID), url.Values{"inc": {"artist-rels"}})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrCatalogRequest, err)
	}

	if !resp.OK() {
		m.logger.Warn("work lookup failed", "work_id", workID, "status", resp.StatusCode)
		return &models.WorkInfo{
			Relations: []models.CatalogRelation{},
			Error:     fmt.Sprintf("failed to fetch work relations: status %d", resp.StatusCode),
		}, nil
	}

	var md mbMetadata
	if err := xml.Unmarshal(resp.Body, &md); err != nil {
		return nil, fmt.Errorf("%w: failed to decode work: %v", shared.ErrCatalogRequest, err)
	}

	info := &models.WorkInfo{Relations: []models.CatalogRelation{}}
	if md.Work == nil {
		return info, nil
	}

	for _, list := range md.Work.RelationLists {
		for _, rel := range list.Relations {
			info.Relations = append(info.Relations, toRelation(rel))
		}
	}
	return info, nil
}

// FirstRecordingID returns the first recording linked to workID, or "" when the work has none.
func (m *MusicBrainz) FirstRecordingID(ctx context.Context, workID string) (string, error) {
	var md mbMetadata
	if err := m.fetch(ctx, "recording", url.Values{"work": {workID}, "limit": {"1"}}, &md); err != nil {
		return "", err
	}

	if md.RecordingList == nil || len(md.RecordingList.Recordings) == 0 {
		return "", nil
	}
	return md.RecordingList.Recordings[0].ID, nil
}

// fetch GETs path and decodes the XML body into v. Non-success statuses are errors.
func (m *MusicBrainz) fetch(ctx context.Context, path string, query url.Values, v any) error {
	resp, err := m.api.Get(ctx, path, query)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrCatalogRequest, err)
	}
	if !resp.OK() {
		return fmt.Errorf("%w: %s returned status %d", shared.ErrCatalogRequest, path, resp.StatusCode)
	}
	if err := xml.Unmarshal(resp.Body, v); err != nil {
		return fmt.Errorf("%w: failed to decode %s: %v", shared.ErrCatalogRequest, path, err)
	}
	return nil
}

func toRelation(rel mbRelation) models.CatalogRelation {
	out := models.CatalogRelation{
		RelationType: rel.Type,
		Name:         models.NoName,
		SortName:     models.NoSortName,
	}
	if out.RelationType == "" {
		out.RelationType = models.UnknownRelType
	}
	if rel.Artist != nil {
		if rel.Artist.Name != "" {
			out.Name = rel.Artist.Name
		}
		if rel.Artist.SortName != "" {
			out.SortName = rel.Artist.SortName
		}
	}
	return out
}

// luceneQuote wraps s in quotes for the search query syntax, escaping embedded quotes and backslashes.
func luceneQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}
