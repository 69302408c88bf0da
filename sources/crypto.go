package sources

import (
	"feed-dashboard/models"
)

const (
	ColName         = "name"
	ColSymbol       = "symbol"
	ColCurrentPrice = "current_price"
	ColMarketCap    = "market_cap"
)

// NormalizeCrypto flattens a CoinGecko /coins/markets response.
func NormalizeCrypto(raw interface{}) (models.Table, error) {
	table := models.NewTable(ColName, ColSymbol, ColCurrentPrice, ColMarketCap)

	coins, ok := asArray(raw)
	if !ok {
		return models.Table{}, shapeErr(CoinGecko, "document is not an array")
	}

	for i, c := range coins {
		coin, ok := asObject(c)
		if !ok {
			return models.Table{}, shapeErr(CoinGecko, "entry %d is not an object", i)
		}
		name, ok := reqString(coin, ColName)
		if !ok {
			return models.Table{}, shapeErr(CoinGecko, "entry %d: missing %s", i, ColName)
		}
		symbol, ok := reqString(coin, ColSymbol)
		if !ok {
			return models.Table{}, shapeErr(CoinGecko, "entry %d: missing %s", i, ColSymbol)
		}
		price, ok := reqNumber(coin, ColCurrentPrice)
		if !ok {
			return models.Table{}, shapeErr(CoinGecko, "entry %d: missing %s", i, ColCurrentPrice)
		}
		marketCap, ok := reqNumber(coin, ColMarketCap)
		if !ok {
			return models.Table{}, shapeErr(CoinGecko, "entry %d: missing %s", i, ColMarketCap)
		}
		if err := table.Append(models.Row{
			ColName:         name,
			ColSymbol:       symbol,
			ColCurrentPrice: price,
			ColMarketCap:    marketCap,
		}); err != nil {
			return models.Table{}, err
		}
	}
	return table, nil
}
