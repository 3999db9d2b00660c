package ollama

import "encoding/json"

// ModelDetails describes the format and quantization of an installed model.
type ModelDetails struct {
	Format            string   `json:"format"`
	Family            string   `json:"family"`
	Families          []string `json:"families,omitempty"`
	ParameterSize     string   `json:"parameter_size"`
	QuantizationLevel string   `json:"quantization_level"`
}

// Model is one entry from the server's model list.
type Model struct {
	Name       string        `json:"name"`
	ModifiedAt string        `json:"modified_at"`
	Size       int64         `json:"size"`
	Digest     string        `json:"digest"`
	Details    *ModelDetails `json:"details,omitempty"`
}

// ListResponse is the response to a list request.
type ListResponse struct {
	Models []Model `json:"models"`
}

// ShowResponse contains the details of one model. Fields the server adds
// beyond the known set are preserved in Extra.
type ShowResponse struct {
	Modelfile  string                     `json:"modelfile,omitempty"`
	Parameters json.RawMessage            `json:"parameters,omitempty"`
	Template   string                     `json:"template,omitempty"`
	License    string                     `json:"license,omitempty"`
	Extra      map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON keeps unknown top-level fields in Extra.
func (r *ShowResponse) UnmarshalJSON(data []byte) error {
	type plain ShowResponse
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, known := range []string{"modelfile", "parameters", "template", "license"} {
		delete(all, known)
	}
	if len(all) == 0 {
		all = nil
	}

	*r = ShowResponse(p)
	r.Extra = all
	return nil
}

type pullRequest struct {
	Name string `json:"name"`
}

type deleteRequest struct {
	Name string `json:"name"`
}

type showRequest struct {
	Name string `json:"name"`
}
