package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/stephanschulz/grid-cube/pkg/scene"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms scene-script source before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals.
//
//  2. Kebab-case to underscore: smooth-corners -> smooth_corners
//     zygomys does not allow hyphens in identifiers (it interprets
//     them as the subtraction operator).
//
// It also rewrites traditional Lisp ; comments to the // form zygomys
// expects. All transformations respect string literal boundaries.
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
		// Convert ; line comments to // comments.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
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
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := strings.ReplaceAll(string(b[i+1:j]), "-", "_")
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers to underscore form. Only
		// when the hyphen sits between identifier characters, so a
		// minus operator survives.
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isLetter(b[i+1]) {
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

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string. Returns the
// keyword name (without prefix) and true if it is.
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

// kwArgs holds the result of parsing a mixed positional+keyword
// argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
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

// toInt extracts an int from a Sexp.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toBool extracts a bool from a Sexp.
func toBool(s zygo.Sexp) (bool, error) {
	if v, ok := s.(*zygo.SexpBool); ok {
		return v.Val, nil
	}
	return false, fmt.Errorf("expected bool, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_cosine) and plain strings
// ("cosine").
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

// floatKW assigns a keyword argument to *dst if present.
func floatKW(pa kwArgs, name string, dst *float64) error {
	v, ok := pa.kw[name]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = f
	return nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the scene DSL builtins into a zygomys
// environment. The builtins mutate the provided scene, which starts as
// the default scene; a script only needs to state what it changes.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens become recognizable literals.
func registerBuiltins(env *zygo.Zlisp, sc *scene.Scene) {

	// -----------------------------------------------------------------------
	// (grid :density 20 :spacing 12)
	// -----------------------------------------------------------------------
	env.AddFunction("grid", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if v, ok := pa.kw["density"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("grid: density: %w", err)
			}
			sc.Grid.Density = n
		}
		if err := floatKW(pa, "spacing", &sc.Grid.Spacing); err != nil {
			return zygo.SexpNull, fmt.Errorf("grid: %w", err)
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (cube :size 5 :center-x 10 :center-y 10 :pull 200 :falloff 12)
	// (sphere ...) — same arguments; the last shape form wins.
	// -----------------------------------------------------------------------
	shapeFn := func(kind string) func(*zygo.Zlisp, string, []zygo.Sexp) (zygo.Sexp, error) {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			pa := parseArgs(args)
			sc.Shape.Kind = kind
			for arg, dst := range map[string]*float64{
				"size":     &sc.Shape.Size,
				"center_x": &sc.Shape.CenterX,
				"center_y": &sc.Shape.CenterY,
				"pull":     &sc.Shape.Pull,
				"falloff":  &sc.Shape.Falloff,
			} {
				if err := floatKW(pa, arg, dst); err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
				}
			}
			return zygo.SexpNull, nil
		}
	}
	env.AddFunction("cube", shapeFn(scene.KindCube))
	env.AddFunction("sphere", shapeFn(scene.KindSphere))

	// -----------------------------------------------------------------------
	// (opacity :shell 1.0 :cloth 0.55 :interior 0.25 :background 0.12)
	// -----------------------------------------------------------------------
	env.AddFunction("opacity", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		for arg, dst := range map[string]*float64{
			"shell":      &sc.Opacity.Shell,
			"cloth":      &sc.Opacity.Cloth,
			"interior":   &sc.Opacity.Interior,
			"background": &sc.Opacity.Background,
		} {
			if err := floatKW(pa, arg, dst); err != nil {
				return zygo.SexpNull, fmt.Errorf("opacity: %w", err)
			}
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (curve :style :cosine)
	// (curve :style :exponential :stiffness 2.5)
	// -----------------------------------------------------------------------
	env.AddFunction("curve", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if v, ok := pa.kw["style"]; ok {
			style, err := toKeywordString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("curve: style: %w", err)
			}
			switch style {
			case scene.StyleCosine, scene.StyleExponential:
				sc.FalloffStyle = style
			default:
				return zygo.SexpNull, fmt.Errorf("curve: unknown style %q, expected cosine or exponential", style)
			}
		}
		if err := floatKW(pa, "stiffness", &sc.Stiffness); err != nil {
			return zygo.SexpNull, fmt.Errorf("curve: %w", err)
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (smooth-corners true)
	// -----------------------------------------------------------------------
	env.AddFunction("smooth_corners", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("smooth-corners requires exactly one bool argument")
		}
		on, err := toBool(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("smooth-corners: %w", err)
		}
		sc.SmoothCorners = on
		return zygo.SexpNull, nil
	})
}
