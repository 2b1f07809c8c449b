package cart

// Merge folds a guest cart into an account cart at sign-in. The result
// starts as a copy of the account cart; each guest line either adds its
// quantity onto the matching account line or is appended at the end in
// guest order. On a key match the account line's name, price and image are
// kept even when the guest copy differs.
func Merge(account, guest Cart) Cart {
	merged := account.Clone()
	if guest.IsEmpty() {
		return merged
	}

	index := make(map[LineKey]int, len(merged.Items))
	for i, item := range merged.Items {
		index[item.Key()] = i
	}

	for _, item := range guest.Items {
		if i, ok := index[item.Key()]; ok {
			merged.Items[i].Quantity += item.Quantity
			continue
		}
		merged.Items = append(merged.Items, item)
		index[item.Key()] = len(merged.Items) - 1
	}

	return merged
}
