/*
 * Copyright 2026 The Yorkie Authors. All rights reserved.
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

package housekeeping

import (
	"fmt"
	"time"
)

// Config is the configuration for the housekeeping service.
type Config struct {
	// Interval is the time between idle sweeps.
	Interval string `yaml:"Interval"`

	// CollaboratorStaleThreshold is how long a collaborator may stay silent
	// before the sweep evicts it.
	CollaboratorStaleThreshold string `yaml:"CollaboratorStaleThreshold"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if d, err := time.ParseDuration(c.Interval); err != nil || d <= 0 {
		return fmt.Errorf(
			`invalid argument "%s" for "--housekeeping-interval" flag`,
			c.Interval,
		)
	}

	if d, err := time.ParseDuration(c.CollaboratorStaleThreshold); err != nil || d <= 0 {
		return fmt.Errorf(
			`invalid argument "%s" for "--collaborator-stale-threshold" flag`,
			c.CollaboratorStaleThreshold,
		)
	}

	return nil
}

// ParseInterval parses the interval.
func (c *Config) ParseInterval() (time.Duration, error) {
	interval, err := time.ParseDuration(c.Interval)
	if err != nil {
		return 0, fmt.Errorf("parse interval %s: %w", c.Interval, err)
	}

	return interval, nil
}

// ParseStaleThreshold parses the collaborator stale threshold.
func (c *Config) ParseStaleThreshold() (time.Duration, error) {
	threshold, err := time.ParseDuration(c.CollaboratorStaleThreshold)
	if err != nil {
		return 0, fmt.Errorf("parse stale threshold %s: %w", c.CollaboratorStaleThreshold, err)
	}

	return threshold, nil
}
