/*
Copyright © 2020 ConsenSys Software Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package frontend

// Circuit must be implemented by user-defined circuits. The best way to define
// a circuit is to define a type holding its compile-time parameters (register
// widths, variant switches) and declare a `Define` method on the type.
//
// For example, the following circuit adds two registers of c.Width bits:
//
//	type AddCircuit struct {
//	    Width int
//	}
//
//	func (c *AddCircuit) Define(api frontend.API) error {
//	    x := api.Register(c.Width)
//	    y := api.Register(c.Width)
//	    z := api.Register(c.Width + 1)
//	    return adder.Ripple(api, x, y, z)
//	}
type Circuit interface {
	// Define declares the circuit's gates
	Define(api API) error
}
