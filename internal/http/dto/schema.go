package dto

import (
	"fmt"

	"github.com/invopop/jsonschema"

	"basegraph.app/cms/internal/model"
)

var createRequests = map[model.Resource]any{
	model.ResourceBlogPosts: &CreateBlogPostRequest{},
	model.ResourceEvents:    &CreateEventRequest{},
	model.ResourceTracks:    &CreateTrackRequest{},
	model.ResourceStories:   &CreateStoryRequest{},
	model.ResourcePartners:  &CreatePartnerRequest{},
	model.ResourceUsers:     &CreateUserRequest{},
}

var ErrUnknownResource = fmt.Errorf("unknown resource")

// Schema returns the JSON Schema of the create payload for resource.
func Schema(resource model.Resource) (*jsonschema.Schema, error) {
	req, ok := createRequests[resource]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownResource, resource)
	}

	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(req)
	schema.Title = string(resource)
	return schema, nil
}
