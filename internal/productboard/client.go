// Package productboard is a thin authenticated client for the Productboard
// REST API: one-request operations per entity plus the two pagination walks
// the API uses (links.next and pageCursor).
package productboard

import (
	"context"
	"net/http"
	"os"
	"time"
)

// TokenEnv is the environment variable holding the API token. The token is
// read fresh on every request; validity is never cached.
const TokenEnv = "PRODUCTBOARD_API_TOKEN"

// DefaultBaseURL is the public Productboard API endpoint.
const DefaultBaseURL = "https://api.productboard.com"

// Config holds connection settings. Token, when set, overrides the
// per-request environment lookup (used by tests).
type Config struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// ListOptions carries the normalized inputs of a listing operation: the
// already-clamped maximum and the flattened query filters.
type ListOptions struct {
	Limit int
	Query map[string]string
}

// Client is the operation surface the tool handlers depend on.
type Client interface {
	ListProducts(ctx context.Context, opts ListOptions) (*Page, error)
	GetProduct(ctx context.Context, id string) (map[string]any, error)

	ListComponents(ctx context.Context, opts ListOptions) (*Page, error)
	GetComponent(ctx context.Context, id string) (map[string]any, error)
	CreateComponent(ctx context.Context, body map[string]any) (map[string]any, error)

	ListFeatures(ctx context.Context, opts ListOptions) (*Page, error)
	GetFeature(ctx context.Context, id string) (map[string]any, error)
	CreateFeature(ctx context.Context, body map[string]any) (map[string]any, error)
	UpdateFeature(ctx context.Context, id string, body map[string]any) (map[string]any, error)
	DeleteFeature(ctx context.Context, id string) (map[string]any, error)

	ListNotes(ctx context.Context, opts ListOptions) (*Page, error)
	GetNote(ctx context.Context, id string) (map[string]any, error)
	CreateNote(ctx context.Context, body map[string]any) (map[string]any, error)
	UpdateNote(ctx context.Context, id string, body map[string]any) (map[string]any, error)
	DeleteNote(ctx context.Context, id string) (map[string]any, error)
	AddNoteTag(ctx context.Context, noteID, tag string) (map[string]any, error)
	RemoveNoteTag(ctx context.Context, noteID, tag string) (map[string]any, error)

	ListReleases(ctx context.Context, opts ListOptions) (*Page, error)
	GetRelease(ctx context.Context, id string) (map[string]any, error)
	CreateRelease(ctx context.Context, body map[string]any) (map[string]any, error)
	UpdateRelease(ctx context.Context, id string, body map[string]any) (map[string]any, error)
	DeleteRelease(ctx context.Context, id string) (map[string]any, error)

	ListReleaseGroups(ctx context.Context, opts ListOptions) (*Page, error)
	GetReleaseGroup(ctx context.Context, id string) (map[string]any, error)

	ListFeatureReleaseAssignments(ctx context.Context, opts ListOptions) (*Page, error)
	SetFeatureReleaseAssignment(ctx context.Context, featureID, releaseID string, assigned bool) (map[string]any, error)

	ListObjectives(ctx context.Context, opts ListOptions) (*Page, error)
	GetObjective(ctx context.Context, id string) (map[string]any, error)
	CreateObjective(ctx context.Context, body map[string]any) (map[string]any, error)
	UpdateObjective(ctx context.Context, id string, body map[string]any) (map[string]any, error)
	DeleteObjective(ctx context.Context, id string) (map[string]any, error)
	ListObjectiveFeatureLinks(ctx context.Context, objectiveID string, opts ListOptions) (*Page, error)
	LinkObjectiveToFeature(ctx context.Context, objectiveID, featureID string) (map[string]any, error)
	UnlinkObjectiveFromFeature(ctx context.Context, objectiveID, featureID string) (map[string]any, error)

	ListInitiatives(ctx context.Context, opts ListOptions) (*Page, error)
	GetInitiative(ctx context.Context, id string) (map[string]any, error)
	CreateInitiative(ctx context.Context, body map[string]any) (map[string]any, error)
	UpdateInitiative(ctx context.Context, id string, body map[string]any) (map[string]any, error)
	DeleteInitiative(ctx context.Context, id string) (map[string]any, error)
	ListInitiativeFeatureLinks(ctx context.Context, initiativeID string, opts ListOptions) (*Page, error)
	LinkInitiativeToFeature(ctx context.Context, initiativeID, featureID string) (map[string]any, error)
	UnlinkInitiativeFromFeature(ctx context.Context, initiativeID, featureID string) (map[string]any, error)

	ListKeyResults(ctx context.Context, opts ListOptions) (*Page, error)
	GetKeyResult(ctx context.Context, id string) (map[string]any, error)
	CreateKeyResult(ctx context.Context, body map[string]any) (map[string]any, error)
	UpdateKeyResult(ctx context.Context, id string, body map[string]any) (map[string]any, error)
	DeleteKeyResult(ctx context.Context, id string) (map[string]any, error)

	ListCompanies(ctx context.Context, opts ListOptions) (*Page, error)
	GetCompany(ctx context.Context, id string) (map[string]any, error)

	ListUsers(ctx context.Context, opts ListOptions) (*Page, error)
	GetUser(ctx context.Context, id string) (map[string]any, error)
	GetCurrentUser(ctx context.Context) (map[string]any, error)

	ListCustomFields(ctx context.Context, opts ListOptions) (*Page, error)
	GetCustomField(ctx context.Context, id string) (map[string]any, error)
	ListCustomFieldValues(ctx context.Context, opts ListOptions) (*Page, error)
	GetCustomFieldValue(ctx context.Context, customFieldID, hierarchyEntityID string) (map[string]any, error)
}

type apiClient struct {
	baseURL string
	http    *http.Client
	token   func() string
}

// New creates a Productboard client from the given configuration.
func New(cfg Config) Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 90 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	token := func() string { return os.Getenv(TokenEnv) }
	if cfg.Token != "" {
		staticToken := cfg.Token
		token = func() string { return staticToken }
	}
	return &apiClient{
		baseURL: trimTrailingSlash(baseURL),
		http:    httpClient,
		token:   token,
	}
}

func trimTrailingSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
