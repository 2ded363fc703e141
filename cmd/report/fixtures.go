package main

// fixturePayloads is a small NDJSON demo set: a hot early mover, a cooling
// mid-cap and a thin suspicious launch. Mints are synthetic.
const fixturePayloads = `{"address":"DemoHot1111111111111111111111111111","name":"Demo Hot","symbol":"HOT","priceUSD":0.0021,"priceChange1minPercentage":6.5,"priceChange5minPercentage":22.0,"volume1minUSD":18000,"volume5minUSD":65000,"volumeBuy5minUSD":45000,"volumeSell5minUSD":20000,"organicVolume5minUSD":40000,"buys5min":420,"sells5min":180,"liquidityUSD":42000,"marketCapUSD":310000,"holdersCount":850,"top10HoldingsPercentage":22,"devHoldingsPercentage":1.5,"snipersHoldingsPercentage":4,"trendingScore1min":88,"trendingScore5min":74,"snipersCount":12,"insidersCount":3,"bundlersCount":1}
{"address":"DemoCool111111111111111111111111111","name":"Demo Cooling","symbol":"COOL","priceUSD":0.15,"priceChange1minPercentage":-1.2,"priceChange5minPercentage":-8.4,"volume5minUSD":9000,"volumeBuy5minUSD":3000,"volumeSell5minUSD":6000,"buys5min":40,"sells5min":95,"liquidityUSD":120000,"marketCapUSD":2400000,"holdersCount":5200,"top10HoldingsPercentage":31,"devHoldingsPercentage":0.2}
{"address":"DemoThin111111111111111111111111111","name":"Demo Thin","symbol":"THIN","priceUSD":0.00004,"priceChange5minPercentage":140.0,"volume5minUSD":2500,"buys5min":30,"sells5min":2,"liquidityUSD":1800,"marketCapUSD":15000,"holdersCount":40,"top10HoldingsPercentage":78,"devHoldingsPercentage":19,"snipersHoldingsPercentage":25}`
