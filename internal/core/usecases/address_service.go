package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"github.com/samirrijal/standortcheck/internal/core/domain"
	"github.com/samirrijal/standortcheck/internal/core/ports"
	"github.com/samirrijal/standortcheck/internal/pkg/geospatial"
	"github.com/samirrijal/standortcheck/internal/pkg/metrics"
)

const (
	suggestLimit    = 10
	addressCacheTTL = 300 // seconds

	// localSRS is the survey system the address register answers in.
	// Register coordinates arrive planar and are converted before leaving
	// this service.
	localSRS = "EPSG:31256"
)

// houseNumberTail matches a query whose last token looks like a house
// number ("Mariahilfer Straße 20", "Gasse 3a").
var houseNumberTail = regexp.MustCompile(`^(.*\S)\s+(\d+\S*)$`)

// AddressService resolves free-text address queries against the city's
// address register.
type AddressService struct {
	source      ports.FeatureSource
	transformer *geospatial.Transformer
	cache       ports.CacheService
	dataset     string
}

// NewAddressService creates a new AddressService. cache may be nil.
func NewAddressService(source ports.FeatureSource, transformer *geospatial.Transformer, cache ports.CacheService, dataset string) *AddressService {
	return &AddressService{source: source, transformer: transformer, cache: cache, dataset: dataset}
}

// Search resolves a full address query to geocoded candidates. Register
// coordinates are planar (EPSG:31256) and converted to WGS 84 on the way
// out; candidates whose coordinates fall outside the city envelope are
// dropped rather than returned half-converted.
func (s *AddressService) Search(ctx context.Context, query string) ([]domain.Address, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("address query must not be empty")
	}

	cacheKey := "addr:search:" + query
	if cached, ok := s.fromCache(ctx, cacheKey, "search"); ok {
		var addrs []domain.Address
		if err := json.Unmarshal(cached, &addrs); err == nil {
			return addrs, nil
		}
	}

	fc := s.source.Fetch(ctx, domain.FeatureQuery{
		Dataset:     s.dataset,
		CQLFilter:   fmt.Sprintf("NAME ILIKE '%s%%'", escapeCQL(query)),
		SRS:         localSRS,
		MaxFeatures: 10,
		Label:       "address:search",
	})
	if fc == nil {
		return nil, nil
	}

	var addrs []domain.Address
	for i := range fc.Features {
		addr, ok := s.toAddress(&fc.Features[i])
		if !ok {
			continue
		}
		addrs = append(addrs, addr)
	}

	s.toCache(ctx, cacheKey, addrs)
	return addrs, nil
}

// Autocomplete returns up to ten suggestions for a prefix query of at least
// two characters, sorted by street name and house number. A trailing
// "<street> <digits...>" tail splits the query into a street prefix and a
// house-number prefix.
func (s *AddressService) Autocomplete(ctx context.Context, query string) ([]domain.Suggestion, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < 2 {
		return nil, nil
	}

	cacheKey := "addr:suggest:" + query
	if cached, ok := s.fromCache(ctx, cacheKey, "autocomplete"); ok {
		var sugg []domain.Suggestion
		if err := json.Unmarshal(cached, &sugg); err == nil {
			return sugg, nil
		}
	}

	fc := s.source.Fetch(ctx, domain.FeatureQuery{
		Dataset:     s.dataset,
		CQLFilter:   SuggestFilter(query),
		SRS:         localSRS,
		MaxFeatures: 50,
		Label:       "address:autocomplete",
	})
	if fc == nil {
		return nil, nil
	}

	var sugg []domain.Suggestion
	for i := range fc.Features {
		f := &fc.Features[i]
		sg := domain.Suggestion{
			Street:      f.StringProp("STRNAM"),
			HouseNumber: f.StringProp("HNRTEXT", "HNR"),
			Label:       f.StringProp("NAME"),
		}
		if sg.Label == "" {
			sg.Label = strings.TrimSpace(sg.Street + " " + sg.HouseNumber)
		}
		if sg.Label == "" {
			continue
		}
		sugg = append(sugg, sg)
	}

	sort.SliceStable(sugg, func(a, b int) bool {
		sa, sb := strings.ToLower(sugg[a].Street), strings.ToLower(sugg[b].Street)
		if sa != sb {
			return sa < sb
		}
		na, nb := houseNumberValue(sugg[a].HouseNumber), houseNumberValue(sugg[b].HouseNumber)
		if na != nb {
			return na < nb
		}
		return sugg[a].HouseNumber < sugg[b].HouseNumber
	})

	if len(sugg) > suggestLimit {
		sugg = sugg[:suggestLimit]
	}

	s.toCache(ctx, cacheKey, sugg)
	return sugg, nil
}

// SuggestFilter builds the CQL filter for an autocomplete query. Literal
// single quotes in user input are doubled before embedding — the filter is
// a textual query fragment, so this is a correctness requirement, not
// hardening.
func SuggestFilter(query string) string {
	if m := houseNumberTail.FindStringSubmatch(query); m != nil {
		return fmt.Sprintf("STRNAM ILIKE '%s%%' AND HNRTEXT ILIKE '%s%%'",
			escapeCQL(m[1]), escapeCQL(m[2]))
	}
	return fmt.Sprintf("STRNAM ILIKE '%s%%'", escapeCQL(query))
}

func escapeCQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// houseNumberValue extracts the leading numeric part of a house number
// ("20a" -> 20) for ordering; non-numeric values sort first.
func houseNumberValue(hnr string) int {
	i := 0
	for i < len(hnr) && hnr[i] >= '0' && hnr[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0
	}
	n, err := strconv.Atoi(hnr[:i])
	if err != nil {
		return 0
	}
	return n
}

func (s *AddressService) toAddress(f *domain.Feature) (domain.Address, bool) {
	g := domain.ExtractGeometry(f.Geometry)
	if g == nil {
		return domain.Address{}, false
	}
	pt, ok := g.Geometry().(orb.Point)
	if !ok {
		return domain.Address{}, false
	}

	geo, err := s.transformer.ToGeographic(domain.LocalPoint{X: pt[0], Y: pt[1]})
	if err != nil {
		slog.Debug("address candidate dropped", "error", err)
		return domain.Address{}, false
	}

	addr := domain.Address{
		Street:      f.StringProp("STRNAM"),
		HouseNumber: f.StringProp("HNRTEXT", "HNR"),
		PostalCode:  f.StringProp("PLZ"),
		District:    f.StringProp("BEZIRK", "GEB_BEZIRK"),
		Label:       f.StringProp("NAME"),
		Location:    geo,
	}
	if addr.Label == "" {
		addr.Label = strings.TrimSpace(addr.Street + " " + addr.HouseNumber)
	}
	return addr, true
}

func (s *AddressService) fromCache(ctx context.Context, key, op string) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		metrics.CacheMisses.WithLabelValues(op).Inc()
		return nil, false
	}
	metrics.CacheHits.WithLabelValues(op).Inc()
	return data, true
}

func (s *AddressService) toCache(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	if data, err := json.Marshal(v); err == nil {
		_ = s.cache.Set(ctx, key, data, addressCacheTTL)
	}
}
