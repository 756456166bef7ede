/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package command

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/imroc/req"

	"jinr.ru/greenlab/go-mcs/pkg/command/ifc"
	"jinr.ru/greenlab/go-mcs/pkg/config"
	deviceifc "jinr.ru/greenlab/go-mcs/pkg/device/ifc"
	"jinr.ru/greenlab/go-mcs/pkg/srv/api"
)

type ApiClient struct {
	*config.Config
	ApiPrefix string
}

var _ ifc.ApiClient = &ApiClient{}

func NewApiClient(cfg *config.Config) *ApiClient {
	return &ApiClient{
		Config:    cfg,
		ApiPrefix: fmt.Sprintf("http://%s:%d/api", cfg.Api.Address, cfg.Api.Port),
	}
}

func (c *ApiClient) url(format string, a ...interface{}) string {
	return c.ApiPrefix + fmt.Sprintf(format, a...)
}

func check(r *req.Resp) error {
	if r.Response().StatusCode != http.StatusOK {
		return ErrApi{
			Status:  r.Response().Status,
			Message: strings.TrimSpace(r.String()),
		}
	}
	return nil
}

func (c *ApiClient) post(url string, body interface{}) error {
	var r *req.Resp
	var err error
	if body == nil {
		r, err = req.Post(url)
	} else {
		r, err = req.Post(url, req.BodyJSON(body))
	}
	if err != nil {
		return err
	}
	return check(r)
}

// RegRead sends request to get the value of a register
func (c *ApiClient) RegRead(name string, count int) (*api.Register, error) {
	r, err := req.Get(c.url("/reg/r/%s", name), req.QueryParam{"count": count})
	if err != nil {
		return nil, err
	}
	if err := check(r); err != nil {
		return nil, err
	}
	reg := &api.Register{}
	if err := r.ToJSON(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// RegWrite sends request to write the value of a register given in text form
func (c *ApiClient) RegWrite(name, kind, value string, wait bool) error {
	return c.post(c.url("/reg/w/%s", name), &api.RegWrite{Kind: kind, Value: value, Wait: wait})
}

func (c *ApiClient) Mode() (string, error) {
	r, err := req.Get(c.url("/mode"))
	if err != nil {
		return "", err
	}
	if err := check(r); err != nil {
		return "", err
	}
	m := &api.ModeResp{}
	if err := r.ToJSON(m); err != nil {
		return "", err
	}
	return m.Mode, nil
}

func (c *ApiClient) SetExternalMode(m deviceifc.ExternalMode) error {
	return c.post(c.url("/mode/external"), &m)
}

func (c *ApiClient) SetInternalMode(prescale *int) error {
	return c.post(c.url("/mode/internal"), &api.InternalMode{Prescale: prescale})
}

func (c *ApiClient) SetPresetRealTime(val float64) error {
	return c.post(c.url("/preset_real"), &api.FloatValue{Value: &val})
}

func (c *ApiClient) SetDwellTime(val float64) error {
	return c.post(c.url("/dwell"), &api.FloatValue{Value: &val})
}

func (c *ApiClient) SetAutoCountMode() error {
	return c.post(c.url("/auto_count"), nil)
}

// Acquisition sends start, stop, erase or advance request
func (c *ApiClient) Acquisition(action string) error {
	return c.post(c.url("/acquisition/%s", action), nil)
}

func (c *ApiClient) Status() (*deviceifc.Status, error) {
	r, err := req.Get(c.url("/status"))
	if err != nil {
		return nil, err
	}
	if err := check(r); err != nil {
		return nil, err
	}
	status := &deviceifc.Status{}
	if err := r.ToJSON(status); err != nil {
		return nil, err
	}
	return status, nil
}

// ReadChannel sends request to read the record of channel n
func (c *ApiClient) ReadChannel(n, count int) (*api.Record, error) {
	r, err := req.Get(c.url("/mca/%d", n), req.QueryParam{"count": count})
	if err != nil {
		return nil, err
	}
	if err := check(r); err != nil {
		return nil, err
	}
	record := &api.Record{}
	if err := r.ToJSON(record); err != nil {
		return nil, err
	}
	return record, nil
}

// Export sends request to write channel records to a file on the server side
func (c *ApiClient) Export(request *api.ExportRequest) (*api.ExportResponse, error) {
	r, err := req.Post(c.url("/export"), req.BodyJSON(request))
	if err != nil {
		return nil, err
	}
	if err := check(r); err != nil {
		return nil, err
	}
	result := &api.ExportResponse{}
	if err := r.ToJSON(result); err != nil {
		return nil, err
	}
	return result, nil
}
