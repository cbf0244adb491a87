// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gl

// OpenGL enum values used by gldraw.
const (
	FALSE = 0
	TRUE  = 1

	NO_ERROR                      = 0
	INVALID_ENUM                  = 0x0500
	INVALID_VALUE                 = 0x0501
	INVALID_OPERATION             = 0x0502
	OUT_OF_MEMORY                 = 0x0505
	INVALID_FRAMEBUFFER_OPERATION = 0x0506

	DEPTH_BUFFER_BIT = 0x00000100
	COLOR_BUFFER_BIT = 0x00004000

	TRIANGLES = 0x0004

	LESS       = 0x0201
	CULL_FACE  = 0x0B44
	DEPTH_TEST = 0x0B71

	VENDOR                   = 0x1F00
	RENDERER                 = 0x1F01
	VERSION                  = 0x1F02
	SHADING_LANGUAGE_VERSION = 0x8B8C

	BYTE           = 0x1400
	UNSIGNED_BYTE  = 0x1401
	SHORT          = 0x1402
	UNSIGNED_SHORT = 0x1403
	INT            = 0x1404
	UNSIGNED_INT   = 0x1405
	FLOAT          = 0x1406

	ARRAY_BUFFER         = 0x8892
	ELEMENT_ARRAY_BUFFER = 0x8893
	STATIC_DRAW          = 0x88E4
	DYNAMIC_DRAW         = 0x88E8

	VERTEX_ATTRIB_ARRAY_ENABLED = 0x8622
	VERTEX_ATTRIB_ARRAY_SIZE    = 0x8623
	VERTEX_ATTRIB_ARRAY_TYPE    = 0x8625

	FRAGMENT_SHADER = 0x8B30
	VERTEX_SHADER   = 0x8B31

	COMPILE_STATUS  = 0x8B81
	LINK_STATUS     = 0x8B82
	INFO_LOG_LENGTH = 0x8B84
	ACTIVE_UNIFORMS = 0x8B86

	FLOAT_VEC2 = 0x8B50
	FLOAT_VEC3 = 0x8B51
	FLOAT_VEC4 = 0x8B52
	INT_VEC2   = 0x8B53
	INT_VEC3   = 0x8B54
	INT_VEC4   = 0x8B55
	BOOL       = 0x8B56
	FLOAT_MAT2 = 0x8B5A
	FLOAT_MAT3 = 0x8B5B
	FLOAT_MAT4 = 0x8B5C
	SAMPLER_2D = 0x8B5E
)

// ErrorString returns the name of the given GetError code.
func ErrorString(code uint32) string {
	switch code {
	case NO_ERROR:
		return "NO_ERROR"
	case INVALID_ENUM:
		return "INVALID_ENUM"
	case INVALID_VALUE:
		return "INVALID_VALUE"
	case INVALID_OPERATION:
		return "INVALID_OPERATION"
	case OUT_OF_MEMORY:
		return "OUT_OF_MEMORY"
	case INVALID_FRAMEBUFFER_OPERATION:
		return "INVALID_FRAMEBUFFER_OPERATION"
	}
	return "unknown GL error"
}

// TypeString returns the GLSL name of a uniform type as reported
// by GetActiveUniform.
func TypeString(xtype uint32) string {
	switch xtype {
	case FLOAT:
		return "float"
	case FLOAT_VEC2:
		return "vec2"
	case FLOAT_VEC3:
		return "vec3"
	case FLOAT_VEC4:
		return "vec4"
	case INT:
		return "int"
	case INT_VEC2:
		return "ivec2"
	case INT_VEC3:
		return "ivec3"
	case INT_VEC4:
		return "ivec4"
	case UNSIGNED_INT:
		return "uint"
	case BOOL:
		return "bool"
	case FLOAT_MAT2:
		return "mat2"
	case FLOAT_MAT3:
		return "mat3"
	case FLOAT_MAT4:
		return "mat4"
	case SAMPLER_2D:
		return "sampler2D"
	}
	return "unknown"
}
