package productboard

import (
	"context"
	"net/http"
	"net/url"
)

// Productboard wraps every request and response body in a "data" envelope.
func dataBody(body map[string]any) map[string]any {
	return map[string]any{"data": body}
}

func (c *apiClient) get(ctx context.Context, path string, query map[string]string) (map[string]any, error) {
	return c.do(ctx, request{method: http.MethodGet, path: path, query: query})
}

func (c *apiClient) post(ctx context.Context, path string, body map[string]any) (map[string]any, error) {
	return c.do(ctx, request{method: http.MethodPost, path: path, body: dataBody(body)})
}

func (c *apiClient) patch(ctx context.Context, path string, body map[string]any) (map[string]any, error) {
	return c.do(ctx, request{method: http.MethodPatch, path: path, body: dataBody(body)})
}

func (c *apiClient) delete(ctx context.Context, path string) (map[string]any, error) {
	return c.do(ctx, request{method: http.MethodDelete, path: path})
}

// Products and components

func (c *apiClient) ListProducts(ctx context.Context, opts ListOptions) (*Page, error) {
	return c.listAll(ctx, "/products", opts.Query, "", opts.Limit)
}

func (c *apiClient) GetProduct(ctx context.Context, id string) (map[string]any, error) {
	return c.get(ctx, "/products/"+url.PathEscape(id), nil)
}

func (c *apiClient) ListComponents(ctx context.Context, opts ListOptions) (*Page, error) {
	return c.listAll(ctx, "/components", opts.Query, "", opts.Limit)
}

func (c *apiClient) GetComponent(ctx context.Context, id string) (map[string]any, error) {
	return c.get(ctx, "/components/"+url.PathEscape(id), nil)
}

func (c *apiClient) CreateComponent(ctx context.Context, body map[string]any) (map[string]any, error) {
	return c.post(ctx, "/components", body)
}

// Features

func (c *apiClient) ListFeatures(ctx context.Context, opts ListOptions) (*Page, error) {
	return c.listAll(ctx, "/features", opts.Query, "pageLimit", opts.Limit)
}

func (c *apiClient) GetFeature(ctx context.Context, id string) (map[string]any, error) {
	return c.get(ctx, "/features/"+url.PathEscape(id), nil)
}

func (c *apiClient) CreateFeature(ctx context.Context, body map[string]any) (map[string]any, error) {
	return c.post(ctx, "/features", body)
}

func (c *apiClient) UpdateFeature(ctx context.Context, id string, body map[string]any) (map[string]any, error) {
	return c.patch(ctx, "/features/"+url.PathEscape(id), body)
}

func (c *apiClient) DeleteFeature(ctx context.Context, id string) (map[string]any, error) {
	return c.delete(ctx, "/features/"+url.PathEscape(id))
}

// Notes. The notes listing is the one cursor-paginated operation.

func (c *apiClient) ListNotes(ctx context.Context, opts ListOptions) (*Page, error) {
	return c.listCursor(ctx, "/notes", opts.Query, opts.Limit)
}

func (c *apiClient) GetNote(ctx context.Context, id string) (map[string]any, error) {
	return c.get(ctx, "/notes/"+url.PathEscape(id), nil)
}

func (c *apiClient) CreateNote(ctx context.Context, body map[string]any) (map[string]any, error) {
	// The notes endpoint predates the data envelope and takes a bare body.
	return c.do(ctx, request{method: http.MethodPost, path: "/notes", body: body})
}

func (c *apiClient) UpdateNote(ctx context.Context, id string, body map[string]any) (map[string]any, error) {
	return c.patch(ctx, "/notes/"+url.PathEscape(id), body)
}

func (c *apiClient) DeleteNote(ctx context.Context, id string) (map[string]any, error) {
	return c.delete(ctx, "/notes/"+url.PathEscape(id))
}

func (c *apiClient) AddNoteTag(ctx context.Context, noteID, tag string) (map[string]any, error) {
	path := "/notes/" + url.PathEscape(noteID) + "/tags/" + url.PathEscape(tag)
	return c.do(ctx, request{method: http.MethodPost, path: path})
}

func (c *apiClient) RemoveNoteTag(ctx context.Context, noteID, tag string) (map[string]any, error) {
	return c.delete(ctx, "/notes/"+url.PathEscape(noteID)+"/tags/"+url.PathEscape(tag))
}

// Releases

func (c *apiClient) ListReleases(ctx context.Context, opts ListOptions) (*Page, error) {
	return c.listAll(ctx, "/releases", opts.Query, "", opts.Limit)
}

func (c *apiClient) GetRelease(ctx context.Context, id string) (map[string]any, error) {
	return c.get(ctx, "/releases/"+url.PathEscape(id), nil)
}

func (c *apiClient) CreateRelease(ctx context.Context, body map[string]any) (map[string]any, error) {
	return c.post(ctx, "/releases", body)
}

func (c *apiClient) UpdateRelease(ctx context.Context, id string, body map[string]any) (map[string]any, error) {
	return c.patch(ctx, "/releases/"+url.PathEscape(id), body)
}

func (c *apiClient) DeleteRelease(ctx context.Context, id string) (map[string]any, error) {
	return c.delete(ctx, "/releases/"+url.PathEscape(id))
}

func (c *apiClient) ListReleaseGroups(ctx context.Context, opts ListOptions) (*Page, error) {
	return c.listAll(ctx, "/release-groups", opts.Query, "", opts.Limit)
}

func (c *apiClient) GetReleaseGroup(ctx context.Context, id string) (map[string]any, error) {
	return c.get(ctx, "/release-groups/"+url.PathEscape(id), nil)
}

func (c *apiClient) ListFeatureReleaseAssignments(ctx context.Context, opts ListOptions) (*Page, error) {
	return c.listAll(ctx, "/feature-release-assignments", opts.Query, "", opts.Limit)
}

func (c *apiClient) SetFeatureReleaseAssignment(ctx context.Context, featureID, releaseID string, assigned bool) (map[string]any, error) {
	return c.do(ctx, request{
		method: http.MethodPut,
		path:   "/feature-release-assignments",
		query: map[string]string{
			"feature.id": featureID,
			"release.id": releaseID,
		},
		body: dataBody(map[string]any{"assigned": assigned}),
	})
}

// Objectives, initiatives and key results

func (c *apiClient) ListObjectives(ctx context.Context, opts ListOptions) (*Page, error) {
	return c.listAll(ctx, "/objectives", opts.Query, "", opts.Limit)
}

func (c *apiClient) GetObjective(ctx context.Context, id string) (map[string]any, error) {
	return c.get(ctx, "/objectives/"+url.PathEscape(id), nil)
}

func (c *apiClient) CreateObjective(ctx context.Context, body map[string]any) (map[string]any, error) {
	return c.post(ctx, "/objectives", body)
}

func (c *apiClient) UpdateObjective(ctx context.Context, id string, body map[string]any) (map[string]any, error) {
	return c.patch(ctx, "/objectives/"+url.PathEscape(id), body)
}

func (c *apiClient) DeleteObjective(ctx context.Context, id string) (map[string]any, error) {
	return c.delete(ctx, "/objectives/"+url.PathEscape(id))
}

func (c *apiClient) ListObjectiveFeatureLinks(ctx context.Context, objectiveID string, opts ListOptions) (*Page, error) {
	path := "/objectives/" + url.PathEscape(objectiveID) + "/links/features"
	return c.listAll(ctx, path, opts.Query, "", opts.Limit)
}

func (c *apiClient) LinkObjectiveToFeature(ctx context.Context, objectiveID, featureID string) (map[string]any, error) {
	path := "/objectives/" + url.PathEscape(objectiveID) + "/links/features/" + url.PathEscape(featureID)
	return c.do(ctx, request{method: http.MethodPost, path: path})
}

func (c *apiClient) UnlinkObjectiveFromFeature(ctx context.Context, objectiveID, featureID string) (map[string]any, error) {
	path := "/objectives/" + url.PathEscape(objectiveID) + "/links/features/" + url.PathEscape(featureID)
	return c.delete(ctx, path)
}

func (c *apiClient) ListInitiatives(ctx context.Context, opts ListOptions) (*Page, error) {
	return c.listAll(ctx, "/initiatives", opts.Query, "", opts.Limit)
}

func (c *apiClient) GetInitiative(ctx context.Context, id string) (map[string]any, error) {
	return c.get(ctx, "/initiatives/"+url.PathEscape(id), nil)
}

func (c *apiClient) CreateInitiative(ctx context.Context, body map[string]any) (map[string]any, error) {
	return c.post(ctx, "/initiatives", body)
}

func (c *apiClient) UpdateInitiative(ctx context.Context, id string, body map[string]any) (map[string]any, error) {
	return c.patch(ctx, "/initiatives/"+url.PathEscape(id), body)
}

func (c *apiClient) DeleteInitiative(ctx context.Context, id string) (map[string]any, error) {
	return c.delete(ctx, "/initiatives/"+url.PathEscape(id))
}

func (c *apiClient) ListInitiativeFeatureLinks(ctx context.Context, initiativeID string, opts ListOptions) (*Page, error) {
	path := "/initiatives/" + url.PathEscape(initiativeID) + "/links/features"
	return c.listAll(ctx, path, opts.Query, "", opts.Limit)
}

func (c *apiClient) LinkInitiativeToFeature(ctx context.Context, initiativeID, featureID string) (map[string]any, error) {
	path := "/initiatives/" + url.PathEscape(initiativeID) + "/links/features/" + url.PathEscape(featureID)
	return c.do(ctx, request{method: http.MethodPost, path: path})
}

func (c *apiClient) UnlinkInitiativeFromFeature(ctx context.Context, initiativeID, featureID string) (map[string]any, error) {
	path := "/initiatives/" + url.PathEscape(initiativeID) + "/links/features/" + url.PathEscape(featureID)
	return c.delete(ctx, path)
}

func (c *apiClient) ListKeyResults(ctx context.Context, opts ListOptions) (*Page, error) {
	return c.listAll(ctx, "/key-results", opts.Query, "", opts.Limit)
}

func (c *apiClient) GetKeyResult(ctx context.Context, id string) (map[string]any, error) {
	return c.get(ctx, "/key-results/"+url.PathEscape(id), nil)
}

func (c *apiClient) CreateKeyResult(ctx context.Context, body map[string]any) (map[string]any, error) {
	return c.post(ctx, "/key-results", body)
}

func (c *apiClient) UpdateKeyResult(ctx context.Context, id string, body map[string]any) (map[string]any, error) {
	return c.patch(ctx, "/key-results/"+url.PathEscape(id), body)
}

func (c *apiClient) DeleteKeyResult(ctx context.Context, id string) (map[string]any, error) {
	return c.delete(ctx, "/key-results/"+url.PathEscape(id))
}

// Companies, users and custom fields

func (c *apiClient) ListCompanies(ctx context.Context, opts ListOptions) (*Page, error) {
	return c.listAll(ctx, "/companies", opts.Query, "pageLimit", opts.Limit)
}

func (c *apiClient) GetCompany(ctx context.Context, id string) (map[string]any, error) {
	return c.get(ctx, "/companies/"+url.PathEscape(id), nil)
}

func (c *apiClient) ListUsers(ctx context.Context, opts ListOptions) (*Page, error) {
	return c.listAll(ctx, "/users", opts.Query, "", opts.Limit)
}

func (c *apiClient) GetUser(ctx context.Context, id string) (map[string]any, error) {
	return c.get(ctx, "/users/"+url.PathEscape(id), nil)
}

// GetCurrentUser asks the dedicated current-user endpoint and, only when that
// endpoint answers 404 (older workspaces predate it), falls back to the first
// entry of the users listing as a proxy. The fallback is specific to this
// operation; other 404s classify normally.
func (c *apiClient) GetCurrentUser(ctx context.Context) (map[string]any, error) {
	me, err := c.get(ctx, "/users/me", nil)
	if err == nil {
		return me, nil
	}
	apiErr, ok := err.(*APIError)
	if !ok || apiErr.Status != http.StatusNotFound {
		return nil, err
	}

	page, listErr := c.listAll(ctx, "/users", nil, "", 1)
	if listErr != nil {
		return nil, listErr
	}
	if len(page.Data) == 0 {
		return nil, err
	}
	if user, ok := page.Data[0].(map[string]any); ok {
		return map[string]any{"data": user}, nil
	}
	return nil, err
}

func (c *apiClient) ListCustomFields(ctx context.Context, opts ListOptions) (*Page, error) {
	return c.listAll(ctx, "/hierarchy-entities/custom-fields", opts.Query, "", opts.Limit)
}

func (c *apiClient) GetCustomField(ctx context.Context, id string) (map[string]any, error) {
	return c.get(ctx, "/hierarchy-entities/custom-fields/"+url.PathEscape(id), nil)
}

func (c *apiClient) ListCustomFieldValues(ctx context.Context, opts ListOptions) (*Page, error) {
	return c.listAll(ctx, "/hierarchy-entities/custom-fields-values", opts.Query, "", opts.Limit)
}

func (c *apiClient) GetCustomFieldValue(ctx context.Context, customFieldID, hierarchyEntityID string) (map[string]any, error) {
	return c.get(ctx, "/hierarchy-entities/custom-fields-values/value", map[string]string{
		"customField.id":     customFieldID,
		"hierarchyEntity.id": hierarchyEntityID,
	})
}
