package ollama

import (
	"context"
	"net/http"
)

// List returns the models installed on the server.
func (c *Client) List(ctx context.Context) (*ListResponse, error) {
	var out ListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/tags", nil, &out, c.opTimeout(listTimeout)); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a model from the server. It issues a DELETE with a JSON
// body; some server builds only accept POST for removal, so a 405 response
// is retried as POST.
func (c *Client) Delete(ctx context.Context, name string) error {
	ctx, cancel := context.WithTimeout(ctx, c.opTimeout(deleteTimeout))
	defer cancel()

	resp, err := c.send(ctx, http.MethodDelete, "/api/delete", deleteRequest{Name: name})
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusMethodNotAllowed {
		resp.Body.Close()
		resp, err = c.send(ctx, http.MethodPost, "/api/delete", deleteRequest{Name: name})
		if err != nil {
			return err
		}
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

// Show fetches the details of one model.
func (c *Client) Show(ctx context.Context, name string) (*ShowResponse, error) {
	var out ShowResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/show", showRequest{Name: name}, &out, c.opTimeout(showTimeout)); err != nil {
		return nil, err
	}
	return &out, nil
}
