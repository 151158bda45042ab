package docker

// DecodeBuildStream exposes decodeBuildStream for testing.
var DecodeBuildStream = decodeBuildStream
