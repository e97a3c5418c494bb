package engine

import (
	"fmt"
	"math"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/facet/pkg/script"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms facet script source before passing it to
// zygomys. It performs three transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: show-normals -> show_normals
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
//  3. Lisp ; line comments become zygomys // comments.
//
// All transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a script.Vec3.
type sexpVec3 struct {
	vec script.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			// A keyword followed by another keyword is a flag.
			if i+1 < len(args) {
				if _, next := isKW(args[i+1]); !next {
					result.kw[name] = args[i+1]
					i += 2
					continue
				}
			}
			result.kw[name] = zygo.SexpNull
			i++
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an integer from a Sexp. Floats are accepted when they
// hold a whole number.
func toInt(s zygo.Sexp) (int, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return int(v.Val), nil
	case *zygo.SexpFloat:
		if v.Val == math.Trunc(v.Val) {
			return int(v.Val), nil
		}
		return 0, fmt.Errorf("expected integer, got %g", v.Val)
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_edit) and plain strings ("edit").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toSwitch converts :on/:off (or "on"/"off") to a bool.
func toSwitch(s zygo.Sexp) (bool, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return false, fmt.Errorf("expected :on or :off: %w", err)
	}
	switch name {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid switch %q, expected on or off", name)
}

// toVec3 extracts a Vec3 from a sexpVec3.
func toVec3(s zygo.Sexp) (script.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return script.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// requireKW returns keyword name from pa or an error naming the builtin.
func requireKW(pa kwArgs, builtin, name string) (zygo.Sexp, error) {
	v, ok := pa.kw[name]
	if !ok || v == zygo.SexpNull {
		return nil, fmt.Errorf("%s requires :%s", builtin, name)
	}
	return v, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// session tracks the model count while a script runs so that shape
// builtins can return the index of the model they add.
type session struct {
	prog   *script.Program
	models int
}

func (s *session) addShape(shape string) zygo.Sexp {
	s.prog.Add(script.OpAddShape, script.AddShapeData{Shape: shape})
	idx := s.models
	s.models++
	return &zygo.SexpInt{Val: int64(idx)}
}

// registerBuiltins installs all facet builtins into a zygomys environment.
// The builtins append operations to the provided program during
// evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, prog *script.Program) {
	s := &session{prog: prog}

	// -----------------------------------------------------------------------
	// (cube) (sphere) (pyramid): each returns the new model's index.
	// -----------------------------------------------------------------------
	for _, shape := range []string{"cube", "sphere", "pyramid"} {
		env.AddFunction(shape, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 0 {
				return zygo.SexpNull, fmt.Errorf("%s takes no arguments, got %d", shape, len(args))
			}
			return s.addShape(shape), nil
		})
	}

	// -----------------------------------------------------------------------
	// (clear)
	// -----------------------------------------------------------------------
	env.AddFunction("clear", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		prog.Add(script.OpClear, script.ClearData{})
		s.models = 0
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (mode :edit) / (mode :object)
	// -----------------------------------------------------------------------
	env.AddFunction("mode", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("mode requires exactly 1 argument, got %d", len(args))
		}
		m, err := toKeywordString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mode: %w", err)
		}
		if m != "edit" && m != "object" {
			return zygo.SexpNull, fmt.Errorf("mode: invalid mode %q, expected edit or object", m)
		}
		prog.Add(script.OpSetMode, script.ModeData{Mode: m})
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (normals :on) / (normals :off)
	// -----------------------------------------------------------------------
	env.AddFunction("normals", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("normals requires exactly 1 argument, got %d", len(args))
		}
		on, err := toSwitch(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("normals: %w", err)
		}
		prog.Add(script.OpShowNormals, script.NormalsData{On: on})
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (kernel :poly) / (kernel :sdfx)
	// -----------------------------------------------------------------------
	env.AddFunction("kernel", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("kernel requires exactly 1 argument, got %d", len(args))
		}
		k, err := toKeywordString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("kernel: %w", err)
		}
		if k != "poly" && k != "sdfx" {
			return zygo.SexpNull, fmt.Errorf("kernel: invalid kernel %q, expected poly or sdfx", k)
		}
		prog.Add(script.OpSetKernel, script.KernelData{Kernel: k})
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}

		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: y: %w", err)
		}
		z, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: z: %w", err)
		}

		return &sexpVec3{vec: script.Vec3{X: x, Y: y, Z: z}}, nil
	})

	// -----------------------------------------------------------------------
	// (drag :model 0 :vertex 3 :to (vec3 0.5 0.5 0.8))
	// -----------------------------------------------------------------------
	env.AddFunction("drag", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var d script.DragData

		v, err := requireKW(pa, "drag", "model")
		if err != nil {
			return zygo.SexpNull, err
		}
		if d.Model, err = toInt(v); err != nil {
			return zygo.SexpNull, fmt.Errorf("drag: model: %w", err)
		}
		if v, err = requireKW(pa, "drag", "vertex"); err != nil {
			return zygo.SexpNull, err
		}
		if d.Vertex, err = toInt(v); err != nil {
			return zygo.SexpNull, fmt.Errorf("drag: vertex: %w", err)
		}
		if v, err = requireKW(pa, "drag", "to"); err != nil {
			return zygo.SexpNull, err
		}
		if d.To, err = toVec3(v); err != nil {
			return zygo.SexpNull, fmt.Errorf("drag: to: %w", err)
		}

		prog.Add(script.OpDrag, d)
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (subdivide :model 0 :face 2 :at (vec3 0.1 0.2 0.5))
	// -----------------------------------------------------------------------
	env.AddFunction("subdivide", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var d script.SubdivideData

		v, err := requireKW(pa, "subdivide", "model")
		if err != nil {
			return zygo.SexpNull, err
		}
		if d.Model, err = toInt(v); err != nil {
			return zygo.SexpNull, fmt.Errorf("subdivide: model: %w", err)
		}
		if v, err = requireKW(pa, "subdivide", "face"); err != nil {
			return zygo.SexpNull, err
		}
		if d.Face, err = toInt(v); err != nil {
			return zygo.SexpNull, fmt.Errorf("subdivide: face: %w", err)
		}
		if v, err = requireKW(pa, "subdivide", "at"); err != nil {
			return zygo.SexpNull, err
		}
		if d.At, err = toVec3(v); err != nil {
			return zygo.SexpNull, fmt.Errorf("subdivide: at: %w", err)
		}

		prog.Add(script.OpSubdivide, d)
		return zygo.SexpNull, nil
	})
}
