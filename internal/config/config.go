package config

const (
	// Power density model
	Epsilon            = 1e-5  // Added to distance² so the sample at 0 m stays finite
	DefaultEnvironment = 22.22 // Environment factor substituted for zero/absent input
	DefaultWindshield  = 1.0   // Windshield factor substituted for zero/absent input
	LogFloor           = 1e-10 // Minimum density before the log10 transform

	// Distance sweeps (meters)
	MaxDistance   = 10.0
	CoarseStep    = 1.0  // Table columns
	FineStep      = 0.2  // Heatmap columns
	HeatmapOffset = 1e-5 // Heatmap distances are shifted off zero before evaluation

	// Parameter defaults
	DefaultType             = "POWER"
	DefaultCount            = 1
	DefaultEnvironmentInput = 22.22 // Initial environment field value
	DefaultWindshieldInput  = 4.0   // Initial windshield field value
	MinCount                = 1
	MaxCount                = 20

	// Display
	AspectRatio = 0.5 // Terminal char aspect correction (chars are ~2:1 tall)
	RingCount   = 5   // Distance rings on the beam view
	HistorySize = 32  // Undo snapshots kept by the interactive view

	// Serve
	DefaultAddr = "127.0.0.1:8350"

	// App
	AppName    = "IRRADIANCE-MAP"
	AppVersion = "1.0"
)
