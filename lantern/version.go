// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package lantern

// Version is the lantern release.
const Version = "v0.1.0-dev"
