package ddb

import (
	"reflect"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/letmevibethatforyou/tripsearch"
)

func TestMarshalPackage(t *testing.T) {
	p := tripsearch.Package{
		ID:       "2abc",
		Name:     "Valle Sagrado",
		City:     "Cusco",
		Price:    tripsearch.Price(520.5),
		Duration: tripsearch.Days(2),
	}

	item, err := MarshalPackage(p)
	if err != nil {
		t.Fatalf("MarshalPackage failed: %v", err)
	}

	pk, ok := item["pk"].(*types.AttributeValueMemberS)
	if !ok || pk.Value != "2abc" {
		t.Errorf("Expected pk 2abc, got %#v", item["pk"])
	}
	sk, ok := item["sk"].(*types.AttributeValueMemberS)
	if !ok || sk.Value != PackagesSortKey {
		t.Errorf("Expected sk %s, got %#v", PackagesSortKey, item["sk"])
	}
	object, ok := item["object"].(*types.AttributeValueMemberM)
	if !ok {
		t.Fatalf("Expected object map, got %#v", item["object"])
	}
	if price, ok := object.Value["price"].(*types.AttributeValueMemberN); !ok || price.Value != "520.5" {
		t.Errorf("Unexpected price attribute %#v", object.Value["price"])
	}

	back, err := UnmarshalPackage(item)
	if err != nil {
		t.Fatalf("UnmarshalPackage failed: %v", err)
	}
	if !reflect.DeepEqual(back, p) {
		t.Errorf("Round trip mismatch: %+v vs %+v", back, p)
	}
}

func TestMarshalPackageOmitsMissingFields(t *testing.T) {
	item, err := MarshalPackage(tripsearch.Package{ID: "x", City: "Lima"})
	if err != nil {
		t.Fatalf("MarshalPackage failed: %v", err)
	}
	object := item["object"].(*types.AttributeValueMemberM)
	if _, ok := object.Value["price"]; ok {
		t.Error("Missing price should be omitted")
	}
	if _, ok := object.Value["duration"]; ok {
		t.Error("Missing duration should be omitted")
	}
}

func TestUnmarshalPackagePrefersPK(t *testing.T) {
	item := map[string]types.AttributeValue{
		"pk": &types.AttributeValueMemberS{Value: "from-pk"},
		"sk": &types.AttributeValueMemberS{Value: PackagesSortKey},
		"object": &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
			"id":       &types.AttributeValueMemberS{Value: "from-object"},
			"city":     &types.AttributeValueMemberS{Value: "Puno"},
			"duration": &types.AttributeValueMemberN{Value: "4"},
		}},
	}

	p, err := UnmarshalPackage(item)
	if err != nil {
		t.Fatalf("UnmarshalPackage failed: %v", err)
	}
	if p.ID != "from-pk" || p.City != "Puno" || p.Duration == nil || *p.Duration != 4 {
		t.Errorf("Unexpected package %+v", p)
	}
	if p.Price != nil {
		t.Errorf("Expected nil price, got %v", *p.Price)
	}
}

func TestUnmarshalPackageInvalid(t *testing.T) {
	item := map[string]types.AttributeValue{
		"object": &types.AttributeValueMemberS{Value: "not a map"},
	}
	if _, err := UnmarshalPackage(item); err == nil {
		t.Error("Expected error for malformed object")
	}
}

func TestKey(t *testing.T) {
	key := Key("recent", ValuesSortKey)
	if key["pk"].(*types.AttributeValueMemberS).Value != "recent" {
		t.Error("Unexpected pk")
	}
	if key["sk"].(*types.AttributeValueMemberS).Value != ValuesSortKey {
		t.Error("Unexpected sk")
	}
}
