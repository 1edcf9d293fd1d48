package shader

// Flat vertex-colored geometry. uTint blends every fragment toward a color,
// which is how the selected solid is highlighted.
const (
	FlatVertex = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;

uniform mat4 uMVP;

out vec3 vColor;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
	vColor = aColor;
}
`

	FlatFragment = `
#version 410 core

in vec3 vColor;

uniform vec3 uTint;
uniform float uTintMix;

out vec4 FragColor;

void main() {
	FragColor = vec4(mix(vColor, uTint, uTintMix), 1.0);
}
`
)
