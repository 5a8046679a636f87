package catalog

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/signalsfoundry/hsr-catalog/model"
	"github.com/signalsfoundry/hsr-catalog/registry"
)

var cmpTransform = cmp.Options{
	cmpopts.EquateNaNs(),
	cmp.AllowUnexported(model.Variant{}),
}

func mustDefault(t *testing.T) *Catalog {
	t.Helper()
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	return c
}

func TestGlobalDefaultIdentity(t *testing.T) {
	got, err := GetTransform(model.FrameCOAMPS1998, model.VariantOrdinal(1))
	if err != nil {
		t.Fatalf("GetTransform error: %v", err)
	}
	want := model.Transform{
		Label:       "HSR_COAMPS_1998_IDENTITY_BY_DEFAULT",
		Description: "Global (Earth)",
		Frame:       model.FrameCOAMPS1998,
		Variant:     model.NewVariant(model.FrameCOAMPS1998, 1, "HSR_COAMPS_1998_IDENTITY_BY_DEFAULT"),
		Region:      model.GlobalRegion,
	}
	if diff := cmp.Diff(want, got, cmpTransform); diff != "" {
		t.Fatalf("transform mismatch (-want +got):\n%s", diff)
	}
}

func TestAbstractFramesAreUndefined(t *testing.T) {
	for _, f := range []model.Frame{model.FrameAbstract2D, model.FrameAbstract3D} {
		got, err := GetTransform(f, model.VariantOrdinal(1))
		if err != nil {
			t.Fatalf("GetTransform(%s) error: %v", f, err)
		}
		if got.Defined() {
			t.Fatalf("%s: expected undefined parameters, got %+v", f, got.Helmert)
		}
		if got.Region.Defined() {
			t.Fatalf("%s: expected undefined region, got %+v", f, got.Region)
		}
	}
}

func TestWGS1984IdentityHasGlobalRegion(t *testing.T) {
	v, err := ResolveVariant("HSR_WGS_1984_IDENTITY")
	if err != nil {
		t.Fatalf("ResolveVariant error: %v", err)
	}
	got, err := GetTransform(model.FrameWGS1984, v)
	if err != nil {
		t.Fatalf("GetTransform error: %v", err)
	}
	if got.Defined() {
		t.Fatalf("expected NaN parameters, got %+v", got.Helmert)
	}
	if got.Region != model.GlobalRegion {
		t.Fatalf("region = %+v, want global", got.Region)
	}
}

func TestEurope1950PositionalLookup(t *testing.T) {
	got, err := GetTransform(model.FrameEurope1950, model.VariantOrdinal(4))
	if err != nil {
		t.Fatalf("GetTransform error: %v", err)
	}
	want := model.Transform{
		Label:       "HSR_EUROPE_1950_3_CYPRUS",
		Description: "Cyprus",
		Frame:       model.FrameEurope1950,
		Variant:     model.NewVariant(model.FrameEurope1950, 4, "HSR_EUROPE_1950_3_CYPRUS"),
		Helmert:     model.Helmert{DeltaX: -104, DeltaY: -101, DeltaZ: -140},
		Region:      model.Region{LowerLeftLat: 33, LowerLeftLong: 31, UpperRightLat: 37, UpperRightLong: 36},
	}
	if diff := cmp.Diff(want, got, cmpTransform); diff != "" {
		t.Fatalf("transform mismatch (-want +got):\n%s", diff)
	}

	c := mustDefault(t)
	variants, err := c.Variants(model.FrameEurope1950)
	if err != nil {
		t.Fatalf("Variants error: %v", err)
	}
	if len(variants) != 28 {
		t.Fatalf("Europe 1950 has %d variants, want 28", len(variants))
	}
	head := []string{"HSR_EUROPE_1950_ALGERIA", "HSR_EUROPE_1950_BALEARIC_ISLANDS", "HSR_EUROPE_1950_CHANNEL_ISLANDS"}
	for i, label := range head {
		if variants[i].Label != label {
			t.Fatalf("variant %d = %s, want %s", i+1, variants[i].Label, label)
		}
	}
}

func TestInvalidOrdinals(t *testing.T) {
	c := mustDefault(t)
	for _, f := range c.Frames() {
		for _, n := range []int{0, -1, 9999} {
			_, err := c.GetTransform(f, model.VariantOrdinal(n))
			if !errors.Is(err, registry.ErrInvalidVariantForFrame) {
				t.Fatalf("GetTransform(%s, %d) error = %v, want ErrInvalidVariantForFrame", f, n, err)
			}
		}
	}
}

func TestForeignVariantRejected(t *testing.T) {
	v, err := ResolveVariant("HSR_EUROPE_1950_3_CYPRUS")
	if err != nil {
		t.Fatalf("ResolveVariant error: %v", err)
	}
	_, err = GetTransform(model.FrameNorthAmerican1983, v)
	if !errors.Is(err, registry.ErrInvalidVariantForFrame) {
		t.Fatalf("error = %v, want ErrInvalidVariantForFrame", err)
	}
	for _, s := range []string{"ORM_N_AM_1983", "HSR_EUROPE_1950_3_CYPRUS"} {
		if !strings.Contains(err.Error(), s) {
			t.Fatalf("error %q does not mention %s", err, s)
		}
	}
}

func TestFrameWithoutVariants(t *testing.T) {
	f, err := ResolveFrame("ORM_MARS_INERTIAL")
	if err != nil {
		t.Fatalf("ResolveFrame error: %v", err)
	}
	if _, err := GetTransform(f, model.VariantOrdinal(1)); !errors.Is(err, registry.ErrUnknownFrame) {
		t.Fatalf("error = %v, want ErrUnknownFrame", err)
	}
}

func TestUnknownNames(t *testing.T) {
	for _, name := range []string{"", "HSR_NOPE", "ORM_WGS_1984"} {
		if _, err := ResolveVariant(name); !errors.Is(err, model.ErrUnknownCodeName) {
			t.Fatalf("ResolveVariant(%q) error = %v, want ErrUnknownCodeName", name, err)
		}
	}
	for _, name := range []string{"", "HSR_WGS_1984_IDENTITY"} {
		if _, err := ResolveFrame(name); !errors.Is(err, model.ErrUnknownCodeName) {
			t.Fatalf("ResolveFrame(%q) error = %v, want ErrUnknownCodeName", name, err)
		}
	}
}

func TestEmbeddedCatalogShape(t *testing.T) {
	c := mustDefault(t)
	if c.Len() != 400 {
		t.Fatalf("Len() = %d, want 400", c.Len())
	}
	if n := len(c.Frames()); n != 253 {
		t.Fatalf("%d frames with variants, want 253", n)
	}
	if n := len(c.FrameInfos()); n != model.FrameCount {
		t.Fatalf("%d frame infos, want %d", n, model.FrameCount)
	}

	for _, f := range c.Frames() {
		variants, err := c.Variants(f)
		if err != nil {
			t.Fatalf("Variants(%s) error: %v", f, err)
		}
		for i, tr := range variants {
			if tr.Variant.Ordinal() != i+1 {
				t.Fatalf("%s position %d holds ordinal %d", f, i, tr.Variant.Ordinal())
			}
			got, err := c.GetTransform(f, tr.Variant)
			if err != nil {
				t.Fatalf("GetTransform(%s) error: %v", tr.Key(), err)
			}
			if !got.Equal(tr) {
				t.Fatalf("GetTransform(%s) returned %s", tr.Key(), got.Key())
			}
			v, err := c.ResolveVariant(tr.Label)
			if err != nil || v != tr.Variant {
				t.Fatalf("ResolveVariant(%s) = %v, %v", tr.Label, v, err)
			}
		}
	}
}

func TestParametersAllOrNothingNaN(t *testing.T) {
	c := mustDefault(t)
	c.Each(func(tr model.Transform) bool {
		nan := 0
		for _, p := range tr.Params() {
			if math.IsNaN(p) {
				nan++
			}
		}
		if nan != 0 && nan != 7 {
			t.Errorf("%s has %d NaN parameters", tr.Label, nan)
		}
		return true
	})
}

func TestLookupDeterministic(t *testing.T) {
	first, err := GetTransform(model.FrameWGS1972, model.VariantOrdinal(1))
	if err != nil {
		t.Fatalf("GetTransform error: %v", err)
	}
	for range 5 {
		again, err := GetTransform(model.FrameWGS1972, model.VariantOrdinal(1))
		if err != nil {
			t.Fatalf("GetTransform error: %v", err)
		}
		if diff := cmp.Diff(first, again, cmpTransform); diff != "" {
			t.Fatalf("lookup not stable:\n%s", diff)
		}
	}
}

// gatedSource counts reads and holds Frames until release is closed.
type gatedSource struct {
	Source
	release    chan struct{}
	frames     atomic.Int32
	transforms atomic.Int32
}

func (s *gatedSource) Frames(ctx context.Context) ([]model.FrameInfo, error) {
	s.frames.Add(1)
	<-s.release
	return s.Source.Frames(ctx)
}

func (s *gatedSource) Transforms(ctx context.Context) ([]model.Transform, error) {
	s.transforms.Add(1)
	return s.Source.Transforms(ctx)
}

func TestConcurrentFirstUseLoadsOnce(t *testing.T) {
	src := &gatedSource{Source: Embedded(), release: make(chan struct{})}
	loader := newDefaultLoader(WithSource(src))

	const callers = 32
	var (
		wg      sync.WaitGroup
		ready   sync.WaitGroup
		results [callers]*Catalog
		errs    = make(chan error, callers)
	)
	ready.Add(callers)
	for i := range callers {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			ready.Done()
			c, err := loader()
			if err != nil {
				errs <- err
				return
			}
			results[n] = c
			if _, err := c.GetTransform(model.FrameEurope1950, model.VariantOrdinal(n%28+1)); err != nil {
				errs <- err
			}
		}(i)
	}
	ready.Wait()
	// Give every caller time to block inside the loader before data arrives.
	time.Sleep(20 * time.Millisecond)
	close(src.release)
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent first use error: %v", err)
	}

	if got := src.frames.Load(); got != 1 {
		t.Fatalf("Frames read %d times, want 1", got)
	}
	if got := src.transforms.Load(); got != 1 {
		t.Fatalf("Transforms read %d times, want 1", got)
	}
	for i, c := range results {
		if c != results[0] {
			t.Fatalf("caller %d got a different catalog", i)
		}
		if c.Len() != 400 {
			t.Fatalf("caller %d saw %d records, want 400", i, c.Len())
		}
	}
}

func TestParseVariant(t *testing.T) {
	c := mustDefault(t)
	v, err := c.ParseVariant("4")
	if err != nil {
		t.Fatalf("ParseVariant error: %v", err)
	}
	if v.Scoped() || v.Ordinal() != 4 {
		t.Fatalf("ParseVariant(\"4\") = %v, want unscoped ordinal 4", v)
	}
	v, err = c.ParseVariant("HSR_EUROPE_1950_3_CYPRUS")
	if err != nil {
		t.Fatalf("ParseVariant error: %v", err)
	}
	if v.Frame() != model.FrameEurope1950 || v.Ordinal() != 4 {
		t.Fatalf("ParseVariant(name) = %v in %s", v, v.Frame())
	}
	if _, err := c.ParseVariant("bogus"); !errors.Is(err, model.ErrUnknownCodeName) {
		t.Fatalf("ParseVariant(bogus) error = %v", err)
	}
}

func TestFrameInfo(t *testing.T) {
	c := mustDefault(t)
	info, err := c.FrameInfo(model.FrameEurope1950)
	if err != nil {
		t.Fatalf("FrameInfo error: %v", err)
	}
	want := model.FrameInfo{
		Frame:          model.FrameEurope1950,
		PublishedName:  "European",
		Template:       model.TemplateOblateEllipsoid,
		ReferenceDatum: "RD_INTERNATIONAL_1924",
		ReferenceFrame: model.FrameWGS1984,
	}
	if diff := cmp.Diff(want, info); diff != "" {
		t.Fatalf("FrameInfo mismatch (-want +got):\n%s", diff)
	}
	if _, err := c.FrameInfo(model.FrameUndefined); !errors.Is(err, model.ErrOutOfRange) {
		t.Fatalf("FrameInfo(undefined) error = %v, want ErrOutOfRange", err)
	}
}

func TestSameReference(t *testing.T) {
	c := mustDefault(t)
	same, err := c.SameReference(model.FrameEurope1950, model.FrameNorthAmerican1983)
	if err != nil {
		t.Fatalf("SameReference error: %v", err)
	}
	if !same {
		t.Fatalf("Europe 1950 and NAD83 should both reference WGS 84")
	}
	same, err = c.SameReference(model.FrameEurope1950, model.FrameMars2000)
	if err != nil {
		t.Fatalf("SameReference error: %v", err)
	}
	if same {
		t.Fatalf("Mars 2000 should not share a reference with Europe 1950")
	}
}

func TestCovering(t *testing.T) {
	c := mustDefault(t)
	got, err := c.Covering(model.FrameEurope1950, 35, 33)
	if err != nil {
		t.Fatalf("Covering error: %v", err)
	}
	labels := make(map[string]bool, len(got))
	for _, tr := range got {
		if !tr.Region.Contains(35, 33) {
			t.Fatalf("%s does not contain the point", tr.Label)
		}
		labels[tr.Label] = true
	}
	for _, want := range []string{"HSR_EUROPE_1950_3_CYPRUS", "HSR_EUROPE_1950_7_CYPRUS"} {
		if !labels[want] {
			t.Fatalf("Covering missing %s; got %v", want, labels)
		}
	}
	if labels["HSR_EUROPE_1950_DENMARK"] {
		t.Fatalf("Covering should not include Denmark")
	}

	if _, err := c.Covering(model.FrameAbstract2D, 0, 0); err != nil {
		t.Fatalf("Covering(abstract) error: %v", err)
	}
	if _, err := c.Covering(model.FrameUndefined, 0, 0); !errors.Is(err, registry.ErrUnknownFrame) {
		t.Fatalf("Covering(undefined) error = %v, want ErrUnknownFrame", err)
	}
}

const testFrames = `ordinal,name,published_name,template,reference_datum,reference_frame
72,ORM_EUROPE_1950,European,ORMT_OBLATE_ELLIPSOID,RD_INTERNATIONAL_1924,ORM_WGS_1984
274,ORM_WGS_1984,World Geodetic System,ORMT_OBLATE_ELLIPSOID,RD_WGS_1984,ORM_WGS_1984
`

const testHeader = "label,description,frame,variant,delta_x,delta_y,delta_z,omega_1,omega_2,omega_3,delta_scale,ll_lat,ll_long,ur_lat,ur_long\n"

func mapSource(transforms string) CSVSource {
	return CSVSource{FS: fstest.MapFS{
		"frames.csv":     {Data: []byte(testFrames)},
		"transforms.csv": {Data: []byte(testHeader + transforms)},
	}}
}

func TestLoadFromCustomSource(t *testing.T) {
	src := mapSource("HSR_EUROPE_1950_A,A,ORM_EUROPE_1950,1,1,2,3,0,0,0,0,30,0,40,10\n" +
		"HSR_EUROPE_1950_B,\"B, quoted\",ORM_EUROPE_1950,2,4,5,6,0,0,0,0,30,0,40,10\n")
	c, err := Load(context.Background(), WithSource(src))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	got, err := c.GetTransform(model.FrameEurope1950, model.VariantOrdinal(2))
	if err != nil {
		t.Fatalf("GetTransform error: %v", err)
	}
	if got.Description != "B, quoted" || got.DeltaZ != 6 {
		t.Fatalf("unexpected record %+v", got)
	}
}

func TestLoadRejectsBadRows(t *testing.T) {
	cases := []struct {
		name string
		rows string
		want error
	}{
		{"partial NaN", "HSR_X,X,ORM_EUROPE_1950,1,NaN,0,0,0,0,0,0,0,0,1,1\n", model.ErrInvalidTransform},
		{"unknown frame name", "HSR_X,X,ORM_NOWHERE,1,0,0,0,0,0,0,0,0,0,1,1\n", ErrMalformedRow},
		{"bad number", "HSR_X,X,ORM_EUROPE_1950,1,abc,0,0,0,0,0,0,0,0,1,1\n", ErrMalformedRow},
		{"short row", "HSR_X,X,ORM_EUROPE_1950,1\n", ErrMalformedRow},
		{"gap", "HSR_X,X,ORM_EUROPE_1950,2,0,0,0,0,0,0,0,0,0,1,1\n", registry.ErrSparseFrame},
		{"frame without info", "HSR_X,X,ORM_WGS_1972,1,0,0,0,0,0,0,0,0,0,1,1\n", ErrIncomplete},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(context.Background(), WithSource(mapSource(tc.rows)))
			if !errors.Is(err, tc.want) {
				t.Fatalf("Load error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestLoadHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Load(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Load error = %v, want context.Canceled", err)
	}
}

type recordingObserver struct {
	mu       sync.Mutex
	loads    int
	variants int
	outcomes map[string]int
}

func (r *recordingObserver) ObserveLoad(frames, variants int, elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loads++
	r.variants = variants
}

func (r *recordingObserver) ObserveLookup(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.outcomes == nil {
		r.outcomes = make(map[string]int)
	}
	r.outcomes[outcome]++
}

func TestObserverSeesLoadAndLookups(t *testing.T) {
	obs := &recordingObserver{}
	c, err := Load(context.Background(), WithObserver(obs))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if obs.loads != 1 || obs.variants != 400 {
		t.Fatalf("observer saw loads=%d variants=%d", obs.loads, obs.variants)
	}

	_, _ = c.GetTransform(model.FrameWGS1984, model.VariantOrdinal(1))
	_, _ = c.GetTransform(model.FrameWGS1984, model.VariantOrdinal(7))
	_, _ = c.GetTransform(model.FrameUndefined, model.VariantOrdinal(1))

	want := map[string]int{OutcomeOK: 1, OutcomeInvalidVariant: 1, OutcomeUnknownFrame: 1}
	if diff := cmp.Diff(want, obs.outcomes); diff != "" {
		t.Fatalf("outcomes mismatch (-want +got):\n%s", diff)
	}
}

func TestFrameForOrdinal(t *testing.T) {
	f, err := FrameForOrdinal(274)
	if err != nil {
		t.Fatalf("FrameForOrdinal(274) error: %v", err)
	}
	if f != model.FrameWGS1984 || f.String() != "ORM_WGS_1984" {
		t.Fatalf("FrameForOrdinal(274) = %s, want ORM_WGS_1984", f)
	}
	for _, n := range []int{0, 277, -1} {
		if _, err := FrameForOrdinal(n); !errors.Is(err, model.ErrOutOfRange) {
			t.Fatalf("FrameForOrdinal(%d) error = %v, want ErrOutOfRange", n, err)
		}
	}
}

func TestValidPair(t *testing.T) {
	c := mustDefault(t)
	if err := c.ValidPair(model.FrameEurope1950, model.VariantOrdinal(28)); err != nil {
		t.Fatalf("ValidPair(Europe 1950, 28) error: %v", err)
	}
	err := c.ValidPair(model.FrameEurope1950, model.VariantOrdinal(29))
	if !errors.Is(err, ErrInvalidPair) || !errors.Is(err, registry.ErrInvalidVariantForFrame) {
		t.Fatalf("ValidPair(Europe 1950, 29) error = %v, want ErrInvalidPair wrapping ErrInvalidVariantForFrame", err)
	}
	if err := c.ValidPair(model.FrameEurope1950, model.Variant{}); !errors.Is(err, ErrInvalidPair) {
		t.Fatalf("ValidPair with undefined variant error = %v, want ErrInvalidPair", err)
	}
}

func TestCheckSRF(t *testing.T) {
	c := mustDefault(t)
	adrastea, err := model.ParseFrame("ORM_ADRASTEA_2000")
	if err != nil {
		t.Fatalf("ParseFrame: %v", err)
	}
	one := model.VariantOrdinal(1)

	tests := []struct {
		class SRFClass
		frame model.Frame
		valid bool
	}{
		{SRFCelestiodetic, model.FrameWGS1984, true},
		{SRFCelestiodetic, model.FrameCOAMPS1998, true},
		{SRFCelestiodetic, adrastea, false},
		{SRFCelestiodetic, model.FrameAbstract3D, false},
		{SRFCelestiocentric, adrastea, true},
		{SRFCelestiocentric, model.FrameAbstract2D, false},
		{SRFCelestiocentric, model.FrameAbstract3D, false},
		{SRFSpherical, model.FrameCOAMPS1998, true},
		{SRFSpherical, model.FrameMars2000, false},
		{SRFLocalSpace2D, model.FrameAbstract2D, true},
		{SRFLocalSpace2D, model.FrameAbstract3D, false},
		{SRFLocalSpace3D, model.FrameAbstract3D, true},
		{SRFLocalSpace3D, model.FrameWGS1984, false},
	}
	for _, tc := range tests {
		err := c.CheckSRF(tc.class, tc.frame, one)
		if tc.valid && err != nil {
			t.Fatalf("CheckSRF(%s, %s) error: %v", tc.class, tc.frame, err)
		}
		if !tc.valid && !errors.Is(err, ErrInvalidPair) {
			t.Fatalf("CheckSRF(%s, %s) error = %v, want ErrInvalidPair", tc.class, tc.frame, err)
		}
	}

	if err := c.CheckSRF(SRFCelestiodetic, model.FrameWGS1984, model.VariantOrdinal(2)); !errors.Is(err, registry.ErrInvalidVariantForFrame) {
		t.Fatalf("CheckSRF with missing variant error = %v, want ErrInvalidVariantForFrame", err)
	}
	if _, err := ParseSRFClass("geocentric"); !errors.Is(err, model.ErrUnknownCodeName) {
		t.Fatalf("ParseSRFClass(geocentric) error = %v, want ErrUnknownCodeName", err)
	}
}
