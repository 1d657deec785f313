package build

import (
	"testing"

	"github.com/basalt-render/raymarch/pkg/sexpr"
	"github.com/basalt-render/raymarch/pkg/store"
)

func parseAndBuild(t *testing.T, src string) (*store.Store, error) {
	t.Helper()
	p, err := sexpr.NewParser(src)
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	forms, err := p.ParseAll()
	if err != nil {
		t.Fatalf("ParseAll: %v", err)
	}
	return Build(forms)
}

func TestBuild_FullScene(t *testing.T) {
	src := `
(transform identity)
(pattern white (solid #ffffff))
(material matte (phong :pattern white :ambient 0.1 :diffuse 0.9 :specular 0.9 :shininess 200))
(node ball (sphere :radius 1))
(node painted (paint matte ball))
(light sun (diffuse #ffffff))
(camera main :width 64 :height 64 :fov 90 :transform identity)
(render (file "out.png") :root painted :camera main)
`
	s, err := parseAndBuild(t, src)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	targets := s.Targets()
	if len(targets) != 1 {
		t.Fatalf("len(Targets()) = %d, want 1", len(targets))
	}
	if targets[0].Kind != store.TargetFile || targets[0].Path != "out.png" {
		t.Errorf("target = %+v", targets[0])
	}
	if len(s.Lights()) != 1 {
		t.Fatalf("len(Lights()) = %d, want 1", len(s.Lights()))
	}
}

func TestBuild_UndefinedNameFails(t *testing.T) {
	_, err := parseAndBuild(t, `(node n (paint nope (sphere :radius 1)))`)
	if _, ok := err.(UndefinedName); !ok {
		t.Errorf("error = %v (%T), want UndefinedName", err, err)
	}
}

func TestBuild_ForwardReferenceFails(t *testing.T) {
	src := `
(node a (union b))
(node b (sphere :radius 1))
`
	_, err := parseAndBuild(t, src)
	if _, ok := err.(UndefinedName); !ok {
		t.Errorf("error = %v (%T), want UndefinedName (forward reference)", err, err)
	}
}

func TestBuild_UnknownPhongOptionFails(t *testing.T) {
	src := `
(pattern white (solid #ffffff))
(material m (phong :pattern white :glossiness 5))
`
	_, err := parseAndBuild(t, src)
	if _, ok := err.(UnknownOption); !ok {
		t.Errorf("error = %v (%T), want UnknownOption", err, err)
	}
}

func TestBuild_ArityErrorOnWrongArgCount(t *testing.T) {
	_, err := parseAndBuild(t, `(node n (subtract a))`)
	if _, ok := err.(ArityError); !ok {
		t.Errorf("error = %v (%T), want ArityError", err, err)
	}
}

func TestBuild_PhongDefaults(t *testing.T) {
	src := `
(pattern white (solid #ffffff))
(material m (phong :pattern white))
`
	s, err := parseAndBuild(t, src)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	mat := s.GetMaterial(0)
	if mat.Ambient != 0.1 || mat.Diffuse != 0.9 || mat.Specular != 0.9 || mat.Shininess != 200 || mat.Reflective != 0 {
		t.Errorf("phong defaults = %+v", mat)
	}
}

func TestBuild_InterningAcrossNodes(t *testing.T) {
	src := `
(node a (sphere :radius 1))
(node b (sphere :radius 1))
(node u (union a b))
`
	s, err := parseAndBuild(t, src)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	union := s.GetNode(1)
	if union.Children[0] != union.Children[1] {
		t.Errorf("expected structurally identical spheres to intern to the same node id, got %v", union.Children)
	}
}

func TestBuild_TransformNodeKind(t *testing.T) {
	src := `
(transform shift (translate [1 2 3]))
(node a (sphere :radius 1))
(node shifted (transform shift a))
`
	s, err := parseAndBuild(t, src)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	n := s.GetNode(1)
	if n.Kind != store.NodeTransform {
		t.Fatalf("Kind = %v, want NodeTransform", n.Kind)
	}
}
