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

package channel

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
	"sigs.k8s.io/yaml"

	"jinr.ru/greenlab/go-mcs/pkg/channel/ifc"
	"jinr.ru/greenlab/go-mcs/pkg/log"
	"jinr.ru/greenlab/go-mcs/pkg/reg"
)

const (
	BucketName  = "registers"
	openTimeout = time.Second
)

// RegState keeps named registers in a bbolt database.
// It is the local control channel and the backend of the register gateway.
type RegState struct {
	DB *bbolt.DB
}

var _ ifc.ControlChannel = &RegState{}

func NewRegState(dbPath string) (*RegState, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, err
	}
	// open register database
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, err
	}
	if err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(BucketName))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}
	return &RegState{
		DB: db,
	}, nil
}

// Close ...
func (s *RegState) Close() error {
	return s.DB.Close()
}

// SetReg ...
func (s *RegState) SetReg(name string, value *reg.Value) error {
	log.Debug("Setting register: %s = %s", name, value)
	valueBytes, err := yaml.Marshal(value)
	if err != nil {
		return err
	}
	return s.DB.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketName))
		if b == nil {
			return ErrBucketNotFound{Bucket: BucketName}
		}
		return b.Put([]byte(name), valueBytes)
	})
}

// GetReg ...
func (s *RegState) GetReg(name string) (*reg.Value, error) {
	log.Debug("Getting register: %s", name)
	value := &reg.Value{}
	if err := s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketName))
		if b == nil {
			return ErrBucketNotFound{Bucket: BucketName}
		}
		valueBytes := b.Get([]byte(name))
		if valueBytes == nil {
			return ErrRegisterNotFound{Name: name}
		}
		return yaml.Unmarshal(valueBytes, value)
	}); err != nil {
		return nil, err
	}
	return value, nil
}

// GetRegAll returns all registers whose names start with prefix
func (s *RegState) GetRegAll(prefix string) (map[string]*reg.Value, error) {
	log.Debug("Getting all registers: prefix: %s", prefix)
	regs := map[string]*reg.Value{}
	if err := s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BucketName))
		if b == nil {
			return ErrBucketNotFound{Bucket: BucketName}
		}
		c := b.Cursor()
		p := []byte(prefix)
		for k, v := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, v = c.Next() {
			value := &reg.Value{}
			if err := yaml.Unmarshal(v, value); err != nil {
				log.Error("Error while unmarshalling register %s: %s", k, err)
				return err
			}
			regs[string(k)] = value
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return regs, nil
}

// Get implements ControlChannel
func (s *RegState) Get(name string, count int) (*reg.Value, error) {
	value, err := s.GetReg(name)
	if err != nil {
		return nil, ErrChannelIO{Op: OpGet, Name: name, Err: err}
	}
	return value.Truncate(count), nil
}

// Put implements ControlChannel. bbolt commits are synchronous so wait has no effect.
func (s *RegState) Put(name string, value *reg.Value, wait bool) error {
	if err := s.SetReg(name, value); err != nil {
		return ErrChannelIO{Op: OpPut, Name: name, Err: err}
	}
	return nil
}
