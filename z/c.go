// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package z

// C is a clause locator: an identifier for a clause stored in a solver's
// or simplifier's clause database.  C values are ephemeral and may change
// across clause garbage collection.
type C uint32

// CNull is a C value which never identifies a real clause.
const CNull C = 0
