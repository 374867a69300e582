/*
Package denobind builds a native module and generates TypeScript bindings
for it, so its functions can be called from the Deno runtime over FFI.

# Architecture pipeline (for developers)

Each element in the pipeline has a distinct sub-package. These are then
"glued" together in the [Run] function.
 1. [config]: Parse the optional per-project 'bindgen.toml' file
 2. [cargo]: Build the native module, parse the structured build-event
    stream and resolve the produced shared-library artifact
 3. [dlfcn]: Load the artifact into the running process and invoke its
    exported generator entry point

The [bindgen] package is the other half of the contract: the runtime a
native module links against so that it carries a function-descriptor
registry and the exported entry point the pipeline calls.
*/
package denobind
