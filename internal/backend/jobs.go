package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// StartJobRequest is the body of a start-job call.
type StartJobRequest struct {
	Segment   string   `json:"segmento" validate:"required"`
	Locations []string `json:"locais" validate:"min=1,dive,required"`
}

// NewStartJobRequest trims segment and drops blank locations.
func NewStartJobRequest(segment string, locations []string) StartJobRequest {
	req := StartJobRequest{Segment: strings.TrimSpace(segment), Locations: []string{}}
	for _, l := range locations {
		if l = strings.TrimSpace(l); l != "" {
			req.Locations = append(req.Locations, l)
		}
	}
	return req
}

// Validate checks the request and returns a *ValidationError when it is unusable.
func (r StartJobRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate start job: %w", err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return &ValidationError{Fields: fields}
}

// StartJob asks the backend to scrape segment across locations and returns
// the backend's acceptance message. Invalid input never reaches the network.
func (c *Client) StartJob(ctx context.Context, segment string, locations []string) (string, error) {
	const op = "start job"

	req := NewStartJobRequest(segment, locations)
	if err := req.Validate(); err != nil {
		return "", err
	}

	resp, err := c.do(ctx, op, http.MethodPost, c.paths.StartJobPath, req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if !success(resp) {
		return "", rejected(op, resp)
	}
	var mb messageBody
	if err := json.NewDecoder(resp.Body).Decode(&mb); err != nil {
		return "", fmt.Errorf("%s: decoding response: %w", op, err)
	}
	return mb.Message, nil
}
