// Copyright 2025 go-qsim Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build amd64

package statevec

import "golang.org/x/sys/cpu"

// On amd64, prefer the wide (256-bit-lane) layout when the CPU advertises
// AVX2, matching qsim's StateSpaceAVX. Otherwise fall back to the scalar
// reference layout, matching qsim's StateSpaceSSE/StateSpaceBasic tiers.
func init() {
	if NoSimdEnv() || !cpu.X86.HasAVX2 {
		setScalarMode()
		return
	}
	setWideMode()
}

func setScalarMode() {
	currentLevel = DispatchScalar
	currentWidth = 16
}

func setWideMode() {
	currentLevel = DispatchWide
	currentWidth = 32
}
