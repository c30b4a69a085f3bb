package schema

import "solana-token-api/internal/domain"

// ValidateInsertToken checks a token creation payload and returns its insert shape.
// name, symbol, mintAddress, initialSupply and creatorWallet must be strings;
// decimals may be omitted; description may be omitted or null.
func ValidateInsertToken(body []byte) (*domain.InsertToken, error) {
	obj, issues := parseObject(body)
	if obj == nil {
		return nil, &ValidationError{Issues: issues}
	}

	in := &domain.InsertToken{
		Name:          obj.requiredString("name"),
		Symbol:        obj.requiredString("symbol"),
		MintAddress:   obj.requiredString("mintAddress"),
		Decimals:      obj.optionalInt("decimals"),
		InitialSupply: obj.requiredString("initialSupply"),
		Description:   obj.nullableString("description"),
		CreatorWallet: obj.requiredString("creatorWallet"),
	}

	if err := obj.err(); err != nil {
		return nil, err
	}
	return in, nil
}

// ValidateInsertTransfer checks a transfer payload and returns its insert shape.
func ValidateInsertTransfer(body []byte) (*domain.InsertTransfer, error) {
	obj, issues := parseObject(body)
	if obj == nil {
		return nil, &ValidationError{Issues: issues}
	}

	in := &domain.InsertTransfer{
		TokenID:    obj.requiredInt("tokenId"),
		FromWallet: obj.requiredString("fromWallet"),
		ToWallet:   obj.requiredString("toWallet"),
		Amount:     obj.requiredString("amount"),
		Signature:  obj.requiredString("signature"),
	}

	if err := obj.err(); err != nil {
		return nil, err
	}
	return in, nil
}
