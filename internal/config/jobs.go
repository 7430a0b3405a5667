package config

// DataTickers is the ticker list of the "data" job.
var DataTickers = []string{
	"OEDV", "AAPL", "BAC", "AMZN", "T", "GOOG", "MO", "DAL", "AA", "AXP", "ABT", "UA", "AMAT",
	"AMGN", "AAL", "AIG", "ALL", "ADBE", "GOOGL", "ACN", "ABBV", "MT", "LLY", "AGN", "APA",
	"ADP", "APC", "AKAM", "NLY", "ABX", "ATVI", "ADSK", "ADM", "BMH.AX", "WBA", "ARNA", "LUV",
	"ACAD", "PANW", "AMD", "AET", "AEP", "ALXN", "CLMS", "AVGO", "EA", "DB", "RAI", "AEM", "NVS",
}

// FrontendTickers is the ticker list of the "frontend" job, the symbols the
// dashboard loads from public/data.
var FrontendTickers = []string{
	"AA", "AAPL", "MSFT", "GOOGL", "AMZN", "META", "TSLA", "NVDA", "JPM", "V", "WMT",
	"JNJ", "PG", "MA", "HD", "BAC", "DIS", "ADBE", "CRM", "NFLX", "CSCO",
	"PFE", "ABT", "TMO", "COST", "NKE", "ABBV", "MRK", "AVGO", "PEP", "CVX",
	"INTC", "ORCL", "ACN", "CMCSA", "DHR", "VZ", "AMD", "TXN", "QCOM", "UNP",
	"NEE", "PM", "HON", "LOW", "UPS", "BMY", "LIN", "RTX", "SBUX", "T",
	"INTU", "AMGN", "ELV", "SPGI", "DE", "GS", "BLK", "CAT", "AXP", "BKNG",
	"MDLZ", "GILD", "TJX", "MMC", "SYK", "ADI", "VRTX", "ADP", "CVS", "CI",
	"ISRG", "ZTS", "LRCX", "AMT", "TMUS", "REGN", "MO", "PLD", "SCHW", "BDX",
	"NOC", "ETN", "DUK", "CB", "SO", "BSX", "SLB", "EQIX", "MU", "ITW",
	"AON", "HCA", "PNC", "USB", "APD", "GE", "MMM", "EW", "CL", "FCX",
}

// DefaultJobs returns the two built-in jobs. Each call returns fresh slices.
func DefaultJobs() []Job {
	return []Job{
		{Name: "data", OutputDir: "./data/", Tickers: append([]string(nil), DataTickers...)},
		{Name: "frontend", OutputDir: "./frontend/public/data/", Tickers: append([]string(nil), FrontendTickers...)},
	}
}
