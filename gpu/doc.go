// Package gpu defines the GPU texture handles stored by the texture cache
// and the devices that create and release them.
//
// A [Handle] is an opaque texture name, like an OpenGL texture object name.
// The cache never creates textures; it only owns handles given to it and
// hands them back to a [Device] for deletion.
//
// Two devices are provided:
//
//   - [SoftwareDevice] allocates logical textures with byte accounting and a
//     memory budget. It backs headless rendering and tests.
//   - [CreatorDevice] adapts a gpucontext.TextureCreator (for example a
//     gogpu renderer) so real GPU textures can be named by handles.
package gpu
