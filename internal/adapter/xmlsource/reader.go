// Package xmlsource reads the PrixCarburants annual XML dataset.
package xmlsource

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/blackdede/carbura/internal/domain"
)

// Reader walks a dataset document and produces raw station records in
// document order. It performs no validation beyond the document structure
// itself; dropping bad records is the assembler's job.
type Reader struct {
	logger      *slog.Logger
	maxStations int // 0 means no cap
}

// New creates a Reader. maxStations caps how many station nodes are read,
// 0 reads the whole document.
func New(logger *slog.Logger, maxStations int) *Reader {
	return &Reader{logger: logger, maxStations: maxStations}
}

// ReadAll walks the document and returns every station record in document
// order.
func (r *Reader) ReadAll(src io.Reader) ([]domain.RawStationRecord, error) {
	var records []domain.RawStationRecord
	err := r.Walk(src, func(rec domain.RawStationRecord) error {
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Walk streams station nodes to fn one at a time without materializing the
// whole document. It stops early when fn returns an error or the station
// cap is reached.
func (r *Reader) Walk(src io.Reader, fn func(domain.RawStationRecord) error) error {
	dec := xml.NewDecoder(src)
	dec.CharsetReader = charsetReader

	count := 0
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read token: %w", err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "pdv" {
			continue
		}

		var node pdvNode
		if err := dec.DecodeElement(&node, &se); err != nil {
			return fmt.Errorf("decode station node: %w", err)
		}

		rec, err := mapNode(node)
		if err != nil {
			return err
		}
		if err := fn(rec); err != nil {
			return err
		}

		count++
		if r.maxStations > 0 && count >= r.maxStations {
			r.logger.Debug("station cap reached", "max_stations", r.maxStations)
			return nil
		}
	}
}

// mapNode converts a decoded pdv node into a raw record. The id is the only
// field parsed here: a node whose key attribute is unusable cannot be
// associated with anything downstream, so it fails the walk.
func mapNode(node pdvNode) (domain.RawStationRecord, error) {
	id, err := strconv.Atoi(strings.TrimSpace(node.ID))
	if err != nil {
		return domain.RawStationRecord{}, fmt.Errorf("station id %q is not numeric", node.ID)
	}

	rec := domain.RawStationRecord{
		ID:           id,
		Address:      strings.TrimSpace(node.Address),
		RawLatitude:  node.Latitude,
		RawLongitude: node.Longitude,
		PostalCode:   node.PostalCode,
		City:         strings.TrimSpace(node.City),
	}

	if node.Hours != nil {
		block := domain.RawHoursBlock{
			AlwaysOpen: node.Hours.hasMarker(alwaysOpenMarker),
			Days:       make([]domain.RawDay, 0, len(node.Hours.Days)),
		}
		for _, day := range node.Hours.Days {
			d := domain.RawDay{Day: day.ID, Closed: day.Closed == "1"}
			if day.Hours != nil {
				d.Opening = day.Hours.Opening
				d.Closing = day.Hours.Closing
			}
			block.Days = append(block.Days, d)
		}
		rec.Hours = &block
	}

	for _, p := range node.Prices {
		// The dataset contains empty <prix/> placeholder nodes; they carry
		// no update and are not part of the record.
		if p.FuelType == "" && p.Value == "" && p.UpdatedAt == "" {
			continue
		}
		rec.Prices = append(rec.Prices, domain.RawPriceUpdate{
			FuelType:  p.FuelType,
			Value:     p.Value,
			UpdatedAt: p.UpdatedAt,
		})
	}

	return rec, nil
}

// charsetReader handles the ISO-8859-1 encoding the annual export ships
// with; encoding/xml only decodes UTF-8 on its own.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "iso-8859-1", "latin1", "windows-1252":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	case "utf-8", "":
		return input, nil
	default:
		return nil, fmt.Errorf("unsupported charset %q", charset)
	}
}

// FileSource adapts a Reader to a dataset file on disk.
type FileSource struct {
	path   string
	reader *Reader
}

// NewFileSource creates a source reading the document at path.
func NewFileSource(path string, logger *slog.Logger, maxStations int) *FileSource {
	return &FileSource{path: path, reader: New(logger, maxStations)}
}

// ReadAll opens the dataset file and reads every station record.
func (s *FileSource) ReadAll(_ context.Context) ([]domain.RawStationRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	records, err := s.reader.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", s.path, err)
	}
	return records, nil
}
