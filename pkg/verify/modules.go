/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package verify

import (
	"bufio"
	"os"
	"strings"
)

const defaultProcModules = "/proc/modules"

// moduleLoaded reports whether a module with the given name is registered
// in the kernel module list at path. Module names normalize dashes to
// underscores, so "elan-i2c" and "elan_i2c" are the same module.
func moduleLoaded(path, name string) bool {
	if name == "" {
		return false
	}

	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer func() {
		_ = file.Close()
	}()

	want := normalizeModuleName(name)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if normalizeModuleName(fields[0]) == want {
			return true
		}
	}

	return false
}

func normalizeModuleName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
