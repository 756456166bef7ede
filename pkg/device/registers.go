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

package device

import (
	"fmt"
	"sort"
	"strings"

	"jinr.ru/greenlab/go-mcs/pkg/reg"
)

// Register names follow the SIS38xx MCS record set: <prefix><suffix>

type RegAlias int

const (
	RegChannelAdvance RegAlias = iota
	RegPrescale
	RegEraseStart
	RegEraseAll
	RegStartAll
	RegStopAll
	RegPresetReal
	RegElapsedReal
	RegDwell
	RegAcquiring
	RegNuseAll
	RegCurrentChannel
	RegInitialChannelAdvance
	RegInitialChannelAdvanceExt
	RegSoftwareChannelAdvance
	RegChannel1Source
	RegReadAll
	RegDoReadAll
	RegModel
	RegFirmware
	RegAliasLimit
)

type Register struct {
	Suffix string
	Kind   reg.Kind
	Access reg.Access
}

// Name returns the full register name for a device prefix
func (r Register) Name(prefix string) string {
	return prefix + r.Suffix
}

var RegMap = map[RegAlias]Register{
	RegChannelAdvance:        {Suffix: "ChannelAdvance", Kind: reg.KindInt, Access: reg.ReadWrite},
	RegPrescale:              {Suffix: "Prescale", Kind: reg.KindInt, Access: reg.ReadWrite},
	RegEraseStart:            {Suffix: "EraseStart", Kind: reg.KindInt, Access: reg.WriteOnly},
	RegEraseAll:              {Suffix: "EraseAll", Kind: reg.KindInt, Access: reg.WriteOnly},
	RegStartAll:              {Suffix: "StartAll", Kind: reg.KindInt, Access: reg.WriteOnly},
	RegStopAll:               {Suffix: "StopAll", Kind: reg.KindInt, Access: reg.WriteOnly},
	RegPresetReal:            {Suffix: "PresetReal", Kind: reg.KindFloat, Access: reg.ReadWrite},
	RegElapsedReal:           {Suffix: "ElapsedReal", Kind: reg.KindFloat, Access: reg.ReadOnly},
	RegDwell:                 {Suffix: "Dwell", Kind: reg.KindFloat, Access: reg.ReadWrite},
	RegAcquiring:             {Suffix: "Acquiring", Kind: reg.KindInt, Access: reg.ReadOnly},
	RegNuseAll:               {Suffix: "NuseAll", Kind: reg.KindInt, Access: reg.ReadWrite},
	RegCurrentChannel:        {Suffix: "CurrentChannel", Kind: reg.KindInt, Access: reg.ReadOnly},
	RegInitialChannelAdvance: {Suffix: "InitialChannelAdvance", Kind: reg.KindInt, Access: reg.ReadWrite},
	// TODO: check the IOC database for which of InitialChannelAdvance and
	// InitialChannelAdvancel is served. External mode setup writes this one.
	RegInitialChannelAdvanceExt: {Suffix: "InitialChannelAdvancel", Kind: reg.KindInt, Access: reg.WriteOnly},
	RegSoftwareChannelAdvance:   {Suffix: "SoftwareChannelAdvance", Kind: reg.KindInt, Access: reg.WriteOnly},
	RegChannel1Source:           {Suffix: "Channel1Source", Kind: reg.KindInt, Access: reg.ReadWrite},
	RegReadAll:                  {Suffix: "ReadAll", Kind: reg.KindInt, Access: reg.ReadWrite},
	RegDoReadAll:                {Suffix: "DoReadAll", Kind: reg.KindInt, Access: reg.WriteOnly},
	RegModel:                    {Suffix: "Model", Kind: reg.KindString, Access: reg.ReadOnly},
	RegFirmware:                 {Suffix: "Firmware", Kind: reg.KindString, Access: reg.ReadOnly},
}

// ChannelAdvance register encoding
const (
	ChannelAdvanceInternal int64 = 0
	ChannelAdvanceExternal int64 = 1
)

// Trigger registers act on any write of this value
const (
	TriggerValue int64 = 1
)

// McaSuffix is the histogram record of channel n, counting from 1
func McaSuffix(n int) string {
	return fmt.Sprintf("mca%d", n)
}

// McaPointCountSuffix is the number of valid bins in the histogram of channel n
func McaPointCountSuffix(n int) string {
	return fmt.Sprintf("mca%d.NORD", n)
}

// NormalizePrefix makes sure the device prefix ends with a colon
func NormalizePrefix(prefix string) string {
	if !strings.HasSuffix(prefix, ":") {
		return prefix + ":"
	}
	return prefix
}

// LookupRegister finds a register of the schema by its suffix
func LookupRegister(suffix string) (RegAlias, Register, bool) {
	for alias, r := range RegMap {
		if r.Suffix == suffix {
			return alias, r, true
		}
	}
	return RegAliasLimit, Register{}, false
}

// Suffixes returns the suffixes of all registers in the schema in sorted order
func Suffixes() []string {
	suffixes := make([]string, 0, len(RegMap))
	for _, r := range RegMap {
		suffixes = append(suffixes, r.Suffix)
	}
	sort.Strings(suffixes)
	return suffixes
}
