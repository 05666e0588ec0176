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

package fuser

import "fmt"

// OutOfOrderError indicates a gate sequence with a decreasing time, which
// the fuser refuses to fuse: per spec.md §4.1, the whole operation fails
// and the caller gets a nil result.
type OutOfOrderError struct {
	Time     uint64
	PrevTime uint64
}

func (e *OutOfOrderError) Error() string {
	return fmt.Sprintf("gate times should be ordered: got time %d after time %d", e.Time, e.PrevTime)
}
