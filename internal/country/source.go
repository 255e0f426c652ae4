package country

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/umalmyha/customer-registry/internal/model"
)

// ErrCountryNotFound is returned when provider doesn't know requested country
var ErrCountryNotFound = errors.New("country not found")

const englishDemonymKey = "eng"

// Source fetches country data by ISO 3166-1 numeric code
type Source interface {
	Fetch(context.Context, int16) (*model.Country, error)
}

type restCountry struct {
	Ccn3 string `json:"ccn3"`
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
	Idd struct {
		Root     string   `json:"root"`
		Suffixes []string `json:"suffixes"`
	} `json:"idd"`
	Demonyms map[string]struct {
		F string `json:"f"`
		M string `json:"m"`
	} `json:"demonyms"`
}

type restCountriesSource struct {
	baseURL string
	client  *http.Client
}

// NewRestCountriesSource builds Source backed by RestCountries API
func NewRestCountriesSource(baseURL string, timeout time.Duration) Source {
	return &restCountriesSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *restCountriesSource) Fetch(ctx context.Context, code int16) (*model.Country, error) {
	if code <= 0 {
		return nil, ErrCountryNotFound
	}

	url := fmt.Sprintf("%s/alpha/%03d", s.baseURL, code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request to %s - %w", url, err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request country %d - %w", code, err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound || res.StatusCode == http.StatusBadRequest:
		return nil, ErrCountryNotFound
	case res.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("countries api responded with status %d for country %d", res.StatusCode, code)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read countries api response - %w", err)
	}

	rc, err := decodeCountry(body)
	if err != nil {
		return nil, err
	}
	return rc.toModel(code), nil
}

// decodeCountry accepts both list and single object payloads, api versions differ here
func decodeCountry(body []byte) (*restCountry, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, ErrCountryNotFound
	}

	if body[0] == '[' {
		var list []restCountry
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, fmt.Errorf("failed to decode countries api response - %w", err)
		}

		if len(list) == 0 {
			return nil, ErrCountryNotFound
		}
		return &list[0], nil
	}

	var rc restCountry
	if err := json.Unmarshal(body, &rc); err != nil {
		return nil, fmt.Errorf("failed to decode countries api response - %w", err)
	}
	return &rc, nil
}

func (rc *restCountry) toModel(requested int16) *model.Country {
	code := requested
	if n, err := strconv.ParseInt(rc.Ccn3, 10, 16); err == nil {
		code = int16(n)
	}

	var demonym string
	if d, ok := rc.Demonyms[englishDemonymKey]; ok {
		demonym = d.M
	}

	return &model.Country{
		Code:            code,
		Name:            rc.Name.Common,
		CallingRoot:     rc.Idd.Root,
		CallingSuffixes: rc.Idd.Suffixes,
		Demonym:         demonym,
	}
}
