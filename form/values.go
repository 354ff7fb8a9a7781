package form

// Field names a form field. The dotted names address nested option values.
type Field string

const (
	FieldFeatureColumns       Field = "featureColumns"
	FieldRootCatalyst         Field = "rootCatalyst"
	FieldVisualizationMethod  Field = "visualizationMethod"
	FieldPreprocessingEnabled Field = "preprocessingEnabled"
	FieldPreprocMethod        Field = "preprocMethod"
	FieldScalingMin           Field = "options.scaling.min"
	FieldScalingMax           Field = "options.scaling.max"
	FieldExtentWidth          Field = "options.extent.width"
	FieldExtentHeight         Field = "options.extent.height"
)

// Visualization methods
const (
	VisHierarchicalClustering = "Hierarchical Clustering"
	VisParallelCoordinate     = "Parallel-coordinate Catalyst gene introduction"
	VisHeatmap                = "Heatmap"
	VisTable                  = "Table"
)

// Preprocessing methods
const (
	PreprocStandardScaler = "StandardScaler"
	PreprocNormalizer     = "Normalizer"
	PreprocMaxAbsScaler   = "MaxAbsScaler"
	PreprocMinMaxScaler   = "MinMaxScaler"
)

// Feature selection methods
const (
	MethodManual = "Manual"
	MethodPCA    = "PCA"
)

// Choice lists in display order
var (
	VisualizationMethods = []string{VisHierarchicalClustering, VisParallelCoordinate, VisHeatmap, VisTable}
	PreprocMethods       = []string{PreprocStandardScaler, PreprocNormalizer, PreprocMaxAbsScaler, PreprocMinMaxScaler}
	Methods              = []string{MethodManual, MethodPCA}
	ClusteringMethods    = []string{"single", "complete", "average", "weighted", "centroid", "median", "ward"}
)

const (
	DefaultClusteringMethod = "ward"
	DefaultCatalystColumn   = "Catalyst"
	DefaultDistanceBorder   = 2
)

type Scaling struct {
	Min float64 `toml:"min" json:"min"`
	Max float64 `toml:"max" json:"max"`
}

type Extent struct {
	Width  int `toml:"width" json:"width"`
	Height int `toml:"height" json:"height"`
}

type Options struct {
	Scaling Scaling `toml:"scaling" json:"scaling"`
	Extent  Extent  `toml:"extent" json:"extent"`
}

// Values holds everything the form submits
type Values struct {
	FeatureColumns       []string `toml:"featureColumns" json:"featureColumns"`
	RootCatalyst         string   `toml:"rootCatalyst" json:"rootCatalyst"`
	VisualizationMethod  string   `toml:"visualizationMethod" json:"visualizationMethod"`
	PreprocessingEnabled bool     `toml:"preprocessingEnabled" json:"preprocessingEnabled"`
	PreprocMethod        string   `toml:"preprocMethod" json:"preprocMethod"`

	Method               string   `toml:"method" json:"method"`
	ClusteringMethod     string   `toml:"clusteringMethod" json:"clusteringMethod"`
	DistanceBorder       int      `toml:"distanceBorder" json:"distanceBorder"`
	DataOneHot           bool     `toml:"dataOneHot" json:"dataOneHot"`
	ComponentColumns     []string `toml:"componentColumns" json:"componentColumns"`
	ComponentFirstColumn string   `toml:"componentFirstColumn" json:"componentFirstColumn"`
	ComponentLastColumn  string   `toml:"componentLastColumn" json:"componentLastColumn"`
	CatalystColumn       string   `toml:"catalystColumn" json:"catalystColumn"`

	Options Options `toml:"options" json:"options"`
}

// DefaultValues returns the values a fresh form starts from
func DefaultValues() Values {
	return Values{
		Method:           MethodManual,
		ClusteringMethod: DefaultClusteringMethod,
		DistanceBorder:   DefaultDistanceBorder,
		CatalystColumn:   DefaultCatalystColumn,
		Options: Options{
			Scaling: Scaling{Min: 0, Max: 1},
			Extent:  Extent{Width: 600, Height: 600},
		},
	}
}

// Get returns the current value of a field, nil for unknown fields
func (v *Values) Get(field Field) any {
	switch field {
	case FieldFeatureColumns:
		return v.FeatureColumns
	case FieldRootCatalyst:
		return v.RootCatalyst
	case FieldVisualizationMethod:
		return v.VisualizationMethod
	case FieldPreprocessingEnabled:
		return v.PreprocessingEnabled
	case FieldPreprocMethod:
		return v.PreprocMethod
	case FieldScalingMin:
		return v.Options.Scaling.Min
	case FieldScalingMax:
		return v.Options.Scaling.Max
	case FieldExtentWidth:
		return v.Options.Extent.Width
	case FieldExtentHeight:
		return v.Options.Extent.Height
	}
	return nil
}

// Clone returns a deep copy
func (v Values) Clone() Values {
	out := v
	if v.FeatureColumns != nil {
		out.FeatureColumns = append([]string{}, v.FeatureColumns...)
	}
	if v.ComponentColumns != nil {
		out.ComponentColumns = append([]string{}, v.ComponentColumns...)
	}
	return out
}
