package geoip

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/oschwald/geoip2-golang"
)

// ErrUnavailable is returned when the resolver is not initialized.
var ErrUnavailable = errors.New("geoip resolver unavailable")

// Location is a coarse position derived from a client IP. It backs the
// nearby-charity lookup when the caller does not send explicit coordinates.
type Location struct {
	CountryCode string
	City        string
	Latitude    float64
	Longitude   float64
}

// Resolver answers country and city questions about IP addresses.
type Resolver interface {
	CountryCode(ip string) (string, error)
	Locate(ip string) (*Location, error)
}

// MaxMindResolver provides lookups backed by a MaxMind GeoIP2 city database.
type MaxMindResolver struct {
	reader *geoip2.Reader
}

// NewResolver opens the GeoIP database at the given path. When the path is
// empty, nil is returned and callers degrade to profile-declared locations.
func NewResolver(path string) (Resolver, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geoip: open database: %w", err)
	}
	return &MaxMindResolver{reader: reader}, nil
}

// CountryCode returns the ISO country code for the provided IP.
func (r *MaxMindResolver) CountryCode(ip string) (string, error) {
	if r == nil || r.reader == nil {
		return "", ErrUnavailable
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return "", fmt.Errorf("geoip: invalid ip %q", ip)
	}
	record, err := r.reader.Country(parsed)
	if err != nil {
		return "", fmt.Errorf("geoip: lookup country: %w", err)
	}
	if record == nil || record.Country.IsoCode == "" {
		return "", nil
	}
	return record.Country.IsoCode, nil
}

// Locate returns the approximate position of the provided IP.
func (r *MaxMindResolver) Locate(ip string) (*Location, error) {
	if r == nil || r.reader == nil {
		return nil, ErrUnavailable
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return nil, fmt.Errorf("geoip: invalid ip %q", ip)
	}
	record, err := r.reader.City(parsed)
	if err != nil {
		return nil, fmt.Errorf("geoip: lookup city: %w", err)
	}
	if record == nil {
		return nil, nil
	}
	loc := &Location{
		CountryCode: record.Country.IsoCode,
		Latitude:    record.Location.Latitude,
		Longitude:   record.Location.Longitude,
	}
	if name, ok := record.City.Names["en"]; ok {
		loc.City = name
	}
	return loc, nil
}

// Close closes the underlying database reader.
func (r *MaxMindResolver) Close() error {
	if r == nil || r.reader == nil {
		return nil
	}
	return r.reader.Close()
}
