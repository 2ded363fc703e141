package extract

import "dexpath/internal/domain"

// TokenFacts extracts the analyzer input record from a token-details payload.
// Alias order matters: the most specific provider spellings come first so a
// payload carrying several variants resolves deterministically.
func TokenFacts(p Payload) domain.TokenFacts {
	m := unwrap(p)
	return domain.TokenFacts{
		PriceUSD:    pickNumber(m, "priceUSD", "price_usd", "usdPrice", "price"),
		ATHPriceUSD: pickNumber(m, "athPriceUSD", "athPrice", "ath_price_usd", "ath"),
		ATLPriceUSD: pickNumber(m, "atlPriceUSD", "atlPrice", "atl_price_usd", "atl"),

		PriceChange1mPct: pickNumber(m,
			"priceChange1minPercentage", "priceChange1mPercentage", "priceChange1m", "price_change_1m"),
		PriceChange5mPct: pickNumber(m,
			"priceChange5minPercentage", "priceChange5mPercentage", "priceChange5m", "price_change_5m"),

		Volume5mUSD: pickNumber(m,
			"volume5minUSD", "volume5mUSD", "volume5m", "volume_5m"),
		VolumeBuy5mUSD: pickNumber(m,
			"volumeBuy5minUSD", "buyVolume5minUSD", "volumeBuy5m", "buy_volume_5m"),
		VolumeSell5mUSD: pickNumber(m,
			"volumeSell5minUSD", "sellVolume5minUSD", "volumeSell5m", "sell_volume_5m"),
		OrganicVolume5mUSD: pickNumber(m,
			"organicVolume5minUSD", "organicVolume5m", "organic_volume_5m"),

		Buys5m:  pickNumber(m, "buys5min", "buys5m", "buyCount5m", "buys_5m"),
		Sells5m: pickNumber(m, "sells5min", "sells5m", "sellCount5m", "sells_5m"),

		LiquidityUSD: pickNumber(m,
			"liquidityUSD", "liquidity_usd", "liquidity.usd", "liquidity"),
		LiquidityMaxUSD: pickNumber(m,
			"liquidityMaxUSD", "maxLiquidityUSD", "liquidity_max_usd", "bondingCurveTarget"),
		MarketCapUSD: pickNumber(m,
			"marketCapUSD", "market_cap_usd", "marketCap", "market_cap", "fdv"),

		HoldersCount: pickNumber(m,
			"holdersCount", "holders_count", "holderCount", "holders"),
		Top10HoldingsPct: pickNumber(m,
			"top10HoldingsPercentage", "top10HoldersPercentage", "top10_holdings_percentage", "top10Holdings"),
		DevHoldingsPct: pickNumber(m,
			"devHoldingsPercentage", "dev_holdings_percentage", "devHoldings"),
		SnipersHoldingsPct: pickNumber(m,
			"snipersHoldingsPercentage", "sniperHoldingsPercentage", "snipers_holdings_percentage", "snipersHoldings"),

		TrendingScore1m: pickNumber(m,
			"trendingScore1min", "trendingScore1m", "trending_score_1m"),
		TrendingScore5m: pickNumber(m,
			"trendingScore5min", "trendingScore5m", "trending_score_5m"),
		TrendingScore4h: pickNumber(m,
			"trendingScore4h", "trending_score_4h"),
	}
}

// Volume1mUSD extracts the 1-minute volume. Only the summary generator reads
// this window, so it is not part of TokenFacts or TokenRow.
func Volume1mUSD(p Payload) *float64 {
	m := unwrap(p)
	return pickNumber(m, "volume1minUSD", "volume1mUSD", "volume1m", "volume_1m")
}

// TokenRow extracts a pulse/list row. The same dual-naming tolerance applies;
// identity, naming and timestamps are best-effort strings.
func TokenRow(p Payload) domain.TokenRow {
	m := unwrap(p)
	return domain.TokenRow{
		Mint: pickString(m,
			"address", "mint", "tokenAddress", "token_address", "baseToken.address", "pairAddress"),
		Name:    pickString(m, "name", "tokenName", "token_name", "baseToken.name"),
		Symbol:  pickString(m, "symbol", "tokenSymbol", "token_symbol", "baseToken.symbol"),
		LogoURI: pickString(m, "logoURI", "logo", "image", "icon", "info.imageUrl"),

		PriceUSD: pickNumber(m, "priceUSD", "price_usd", "usdPrice", "price"),

		PriceChange1mPct: pickNumber(m,
			"priceChange1minPercentage", "priceChange1m", "priceChange.m1", "price_change_1m"),
		PriceChange5mPct: pickNumber(m,
			"priceChange5minPercentage", "priceChange5m", "priceChange.m5", "price_change_5m"),
		PriceChange15mPct: pickNumber(m,
			"priceChange15minPercentage", "priceChange15m", "priceChange.m15", "price_change_15m"),
		PriceChange1hPct: pickNumber(m,
			"priceChange1hPercentage", "priceChange1h", "priceChange.h1", "price_change_1h"),
		PriceChange24hPct: pickNumber(m,
			"priceChange24hPercentage", "priceChange24h", "priceChange.h24", "price_change_24h"),

		MarketCapUSD: pickNumber(m,
			"marketCapUSD", "market_cap_usd", "marketCap", "market_cap", "fdv"),
		LiquidityUSD: pickNumber(m,
			"liquidityUSD", "liquidity_usd", "liquidity.usd", "liquidity"),
		Volume1hUSD: pickNumber(m,
			"volume1hUSD", "volume1h", "volume.h1", "volume_1h"),
		Volume24hUSD: pickNumber(m,
			"volume24hUSD", "volume24h", "volume.h24", "volume_24h"),

		Buys24h:  pickNumber(m, "buys24h", "txns.h24.buys", "buys_24h"),
		Sells24h: pickNumber(m, "sells24h", "txns.h24.sells", "sells_24h"),

		SniperCount:  pickNumber(m, "snipersCount", "sniperCount", "snipers_count", "snipers"),
		InsiderCount: pickNumber(m, "insidersCount", "insiderCount", "insiders_count", "insiders"),
		BundlerCount: pickNumber(m, "bundlersCount", "bundlerCount", "bundlers_count", "bundlers"),
		Top10HoldingsPct: pickNumber(m,
			"top10HoldingsPercentage", "top10HoldersPercentage", "top10_holdings_percentage"),
		DevHoldingsPct: pickNumber(m,
			"devHoldingsPercentage", "dev_holdings_percentage"),

		CreatedAtMs: pickTimeMs(m,
			"createdAt", "created_at", "pairCreatedAt", "creationTime", "created_timestamp"),
		UpdatedAtMs: pickTimeMs(m, "updatedAt", "updated_at", "lastUpdated"),

		Signals: pickStrings(m, "signals", "labels", "tags"),
	}
}
